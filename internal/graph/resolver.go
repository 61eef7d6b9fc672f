package graph

import (
	"context"

	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
	"library-backend/internal/domains/user"
	"library-backend/internal/infrastructure/pubsub"
)

// BookFeed is the subscribe side of the broker carrying added books.
type BookFeed interface {
	Subscribe(ctx context.Context, topic string) (*pubsub.Subscription[*book.Book], error)
}

// Resolver is the root for Query, Mutation and Subscription fields.
type Resolver struct {
	books   book.Service
	authors author.Service
	users   user.Service
	feed    BookFeed
}

func NewResolver(books book.Service, authors author.Service, users user.Service, feed BookFeed) *Resolver {
	return &Resolver{
		books:   books,
		authors: authors,
		users:   users,
		feed:    feed,
	}
}

// ========================================
// QUERY
// ========================================

func (r *Resolver) BookCount(ctx context.Context) (int32, error) {
	n, err := r.books.CountBooks(ctx)
	if err != nil {
		return 0, resolverError("bookCount", err, nil)
	}
	return int32(n), nil
}

func (r *Resolver) AuthorCount(ctx context.Context) (int32, error) {
	n, err := r.authors.CountAuthors(ctx)
	if err != nil {
		return 0, resolverError("authorCount", err, nil)
	}
	return int32(n), nil
}

type allBooksArgs struct {
	Author *string
	Genre  *string
}

func (r *Resolver) AllBooks(ctx context.Context, args allBooksArgs) ([]*BookResolver, error) {
	books, err := r.books.ListBooks(ctx, book.Filter{AuthorName: args.Author, Genre: args.Genre})
	if err != nil {
		return nil, resolverError("allBooks", err, nil)
	}

	out := make([]*BookResolver, 0, len(books))
	for i := range books {
		out = append(out, &BookResolver{b: &books[i], authors: r.authors})
	}
	return out, nil
}

func (r *Resolver) AllAuthors(ctx context.Context) ([]*AuthorResolver, error) {
	summaries, err := r.authors.ListAuthors(ctx)
	if err != nil {
		return nil, resolverError("allAuthors", err, nil)
	}

	out := make([]*AuthorResolver, 0, len(summaries))
	for i := range summaries {
		count := summaries[i].BookCount
		out = append(out, &AuthorResolver{a: &summaries[i].Author, bookCount: &count, svc: r.authors})
	}
	return out, nil
}

func (r *Resolver) Me(ctx context.Context) *UserResolver {
	u := user.FromContext(ctx)
	if u == nil {
		return nil
	}
	return &UserResolver{u: u}
}

// ========================================
// MUTATION
// ========================================

type addBookArgs struct {
	Title     string
	Published int32
	Author    string
	Genres    []string
}

func (r *Resolver) AddBook(ctx context.Context, args addBookArgs) (*BookResolver, error) {
	req := book.AddBookRequest{
		Title:     args.Title,
		Published: int(args.Published),
		Author:    args.Author,
		Genres:    args.Genres,
	}
	b, err := r.books.AddBook(ctx, req)
	if err != nil {
		return nil, resolverError("addBook", err, req.Args())
	}
	return &BookResolver{b: b, authors: r.authors}, nil
}

type editAuthorArgs struct {
	Name      string
	SetBornTo int32
}

func (r *Resolver) EditAuthor(ctx context.Context, args editAuthorArgs) (*AuthorResolver, error) {
	a, err := r.authors.EditAuthor(ctx, author.EditAuthorRequest{Name: args.Name, SetBornTo: int(args.SetBornTo)})
	if err != nil {
		return nil, resolverError("editAuthor", err, map[string]interface{}{
			"name":      args.Name,
			"setBornTo": args.SetBornTo,
		})
	}
	if a == nil {
		return nil, nil
	}
	return &AuthorResolver{a: a, svc: r.authors}, nil
}

type createUserArgs struct {
	Username       string
	FavouriteGenre string
	Password       string
}

func (r *Resolver) CreateUser(ctx context.Context, args createUserArgs) (*UserResolver, error) {
	u, err := r.users.CreateUser(ctx, user.CreateUserRequest{
		Username:       args.Username,
		FavouriteGenre: args.FavouriteGenre,
		Password:       args.Password,
	})
	if err != nil {
		return nil, resolverError("createUser", err, map[string]interface{}{
			"username":       args.Username,
			"favouriteGenre": args.FavouriteGenre,
		})
	}
	return &UserResolver{u: u}, nil
}

type loginArgs struct {
	Username string
	Password string
}

func (r *Resolver) Login(ctx context.Context, args loginArgs) (*TokenResolver, error) {
	resp, err := r.users.Login(ctx, user.LoginRequest{Username: args.Username, Password: args.Password})
	if err != nil {
		return nil, resolverError("login", err, nil)
	}
	return &TokenResolver{value: resp.Token}, nil
}

// ========================================
// SUBSCRIPTION
// ========================================

// BookAdded streams every book added after the subscription starts. The
// stream ends when ctx is cancelled (client gone) or the broker shuts down.
func (r *Resolver) BookAdded(ctx context.Context) (<-chan *BookResolver, error) {
	sub, err := r.feed.Subscribe(ctx, book.TopicBookAdded)
	if err != nil {
		return nil, resolverError("bookAdded", err, nil)
	}

	out := make(chan *BookResolver)
	go func() {
		defer close(out)
		defer sub.Close()

		for b := range sub.C() {
			select {
			case out <- &BookResolver{b: b, authors: r.authors}:
			case <-ctx.Done():
				return
			}
		}
		log.Debug().Str("topic", sub.Topic()).Msg("[GRAPHQL] bookAdded stream ended")
	}()
	return out, nil
}
