// Package admin exposes a static registry of editable models and generic
// CRUD over them.
package admin

import (
	"fmt"
	"sort"

	"github.com/angelmondragon/bookhaven-backend/pkg/db/models"
)

// Fieldset groups fields on the edit form. An empty Title is the untitled
// leading group.
type Fieldset struct {
	Title  string   `json:"title"`
	Fields []string `json:"fields"`
}

// Entity describes how one model is listed and edited.
type Entity struct {
	Name        string     `json:"name"`
	PrimaryKey  string     `json:"primary_key"`
	Display     []string   `json:"display"`
	Editable    []string   `json:"editable"`
	Fieldsets   []Fieldset `json:"fieldsets,omitempty"`
	ListFilters []string   `json:"list_filters,omitempty"`
	Ordering    []string   `json:"ordering,omitempty"`

	CreateDisabled bool `json:"create_disabled,omitempty"`

	newModel  func() any
	newSlice  func() any
	autoTimes []string
}

// New returns a pointer to a zero model.
func (e Entity) New() any { return e.newModel() }

// NewSlice returns a pointer to an empty slice of models.
func (e Entity) NewSlice() any { return e.newSlice() }

// Option customizes an Entity at registration.
type Option func(*Entity)

func WithDisplay(cols ...string) Option { return func(e *Entity) { e.Display = cols } }

func WithEditable(cols ...string) Option { return func(e *Entity) { e.Editable = cols } }

func WithFilters(cols ...string) Option { return func(e *Entity) { e.ListFilters = cols } }

func WithOrdering(exprs ...string) Option { return func(e *Entity) { e.Ordering = exprs } }

func WithPrimaryKey(col string) Option { return func(e *Entity) { e.PrimaryKey = col } }

func WithFieldsets(sets ...Fieldset) Option { return func(e *Entity) { e.Fieldsets = sets } }

// WithoutCreate disables generic inserts for models that need a dedicated flow.
func WithoutCreate() Option { return func(e *Entity) { e.CreateDisabled = true } }

// Register builds an Entity for model type T.
func Register[T any](name string, opts ...Option) Entity {
	e := Entity{
		Name:       name,
		PrimaryKey: "id",
		newModel:   func() any { return new(T) },
		newSlice:   func() any { return &[]T{} },
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Registry is an immutable name → Entity table.
type Registry struct {
	entities map[string]Entity
}

// NewRegistry indexes entities by name. Duplicate names are rejected.
func NewRegistry(entities ...Entity) (*Registry, error) {
	r := &Registry{entities: make(map[string]Entity, len(entities))}
	for _, e := range entities {
		if _, dup := r.entities[e.Name]; dup {
			return nil, fmt.Errorf("admin entity %q registered twice", e.Name)
		}
		r.entities[e.Name] = e
	}
	return r, nil
}

// Lookup returns the entity registered under name.
func (r *Registry) Lookup(name string) (Entity, bool) {
	e, ok := r.entities[name]
	return e, ok
}

// Entities lists registered entities sorted by name.
func (r *Registry) Entities() []Entity {
	out := make([]Entity, 0, len(r.entities))
	for _, e := range r.entities {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DefaultRegistry registers every persisted model. Author, Book and
// BookInstance carry custom list and form configuration.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(
		Register[models.Author]("author",
			WithDisplay("id", "last_name", "first_name", "bio_data"),
			WithEditable("first_name", "last_name", "bio_data"),
			WithOrdering("last_name ASC", "first_name ASC"),
		),
		Register[models.Book]("book",
			WithDisplay("title", "author_id", "publ_year"),
			WithOrdering("title ASC"),
		),
		Register[models.BookInstance]("bookinstance",
			WithDisplay("book_id", "status", "borrower_id", "due_back", "id"),
			WithFilters("status", "due_back"),
			WithFieldsets(
				Fieldset{Fields: []string{"book_id", "imprint", "id"}},
				Fieldset{Title: "Availability", Fields: []string{"status", "due_back", "borrower_id"}},
			),
			WithOrdering("due_back ASC"),
		),
		Register[models.Genre]("genre"),
		Register[models.Category]("category"),
		Register[models.Rating]("rating"),
		Register[models.InStock]("instock", WithOrdering("how_many_left ASC")),
		Register[models.SoldOut]("soldout"),
		Register[models.Like]("like"),
		Register[models.User]("user",
			WithDisplay("id", "email", "first_name", "last_name", "is_active", "is_staff"),
			WithEditable("email", "first_name", "last_name", "is_active", "is_staff"),
			WithFilters("is_active", "is_staff"),
			WithoutCreate(),
		),
		Register[models.Customer]("customer"),
		Register[models.Product]("product", WithFilters("digital")),
		Register[models.Order]("order", WithFilters("complete", "customer_id")),
		Register[models.OrderItem]("orderitem", WithFilters("order_id")),
		Register[models.ShippingAddress]("shippingaddress"),
		Register[models.LegacyOrder]("legacyorder", WithPrimaryKey("order_id")),
		Register[models.HardBookOrder]("hardbookorder"),
		Register[models.ActiveOrder]("activeorder"),
		Register[models.CompletedOrder]("completedorder"),
		Register[models.Purchase]("purchase"),
	)
	if err != nil {
		panic(err)
	}
	return r
}
