package admin

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/angelmondragon/bookhaven-backend/internal/repo"
	"github.com/angelmondragon/bookhaven-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/bookhaven-backend/pkg/errors"
	"github.com/angelmondragon/bookhaven-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListResult is one page of rows for an entity.
type ListResult struct {
	Entity string          `json:"entity"`
	Rows   any             `json:"rows"`
	Meta   pagination.Meta `json:"meta"`
}

// Service performs generic CRUD over registered entities.
type Service interface {
	Entities() []Entity
	List(ctx context.Context, name string, filters url.Values, page pagination.Params) (*ListResult, error)
	Get(ctx context.Context, name string, id uuid.UUID) (any, error)
	Create(ctx context.Context, name string, payload map[string]any) (any, error)
	Update(ctx context.Context, name string, id uuid.UUID, payload map[string]any) (any, error)
	Delete(ctx context.Context, name string, id uuid.UUID) error
}

type service struct {
	registry *Registry
	base     repo.Base
}

// NewService binds the registry to a database connection and resolves
// defaults for entities registered without explicit columns.
func NewService(registry *Registry, conn *gorm.DB) (Service, error) {
	if registry == nil {
		return nil, fmt.Errorf("admin registry required")
	}
	if conn == nil {
		return nil, fmt.Errorf("database required")
	}
	for name, e := range registry.entities {
		resolved, err := resolveDefaults(conn, e)
		if err != nil {
			return nil, fmt.Errorf("admin entity %s: %w", name, err)
		}
		registry.entities[name] = resolved
	}
	return &service{registry: registry, base: repo.NewBase(conn)}, nil
}

// resolveDefaults fills display and editable columns from the gorm schema.
func resolveDefaults(conn *gorm.DB, e Entity) (Entity, error) {
	stmt := &gorm.Statement{DB: conn}
	if err := stmt.Parse(e.New()); err != nil {
		return e, err
	}
	var all, editable []string
	for _, f := range stmt.Schema.Fields {
		if f.DBName == "" {
			continue
		}
		all = append(all, f.DBName)
		if f.AutoCreateTime > 0 || f.AutoUpdateTime > 0 {
			e.autoTimes = append(e.autoTimes, f.DBName)
		}
		if f.PrimaryKey || f.AutoCreateTime > 0 || f.AutoUpdateTime > 0 || f.DBName == "password_hash" {
			continue
		}
		editable = append(editable, f.DBName)
	}
	if len(e.Display) == 0 {
		e.Display = slices.DeleteFunc(slices.Clone(all), func(c string) bool { return c == "password_hash" })
	}
	if len(e.Editable) == 0 {
		e.Editable = editable
	}
	if len(e.Ordering) == 0 {
		e.Ordering = []string{e.PrimaryKey + " ASC"}
	}
	return e, nil
}

func (s *service) Entities() []Entity {
	return s.registry.Entities()
}

func (s *service) List(ctx context.Context, name string, filters url.Values, page pagination.Params) (*ListResult, error) {
	e, err := s.lookup(name)
	if err != nil {
		return nil, err
	}

	scope := func() *gorm.DB {
		q := s.base.DB(ctx).Model(e.New())
		for _, col := range e.ListFilters {
			if v := strings.TrimSpace(filters.Get(col)); v != "" {
				q = q.Where(col+" = ?", v)
			}
		}
		return q
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count rows")
	}

	q := scope()
	for _, expr := range e.Ordering {
		q = q.Order(expr)
	}
	rows := e.NewSlice()
	if err := q.Offset(page.Offset()).Limit(page.Limit()).Find(rows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rows")
	}
	return &ListResult{Entity: e.Name, Rows: rows, Meta: pagination.NewMeta(page, total)}, nil
}

func (s *service) Get(ctx context.Context, name string, id uuid.UUID) (any, error) {
	e, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, s.base.DB(ctx), e, id)
}

func (s *service) Create(ctx context.Context, name string, payload map[string]any) (any, error) {
	e, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	if e.CreateDisabled {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, e.Name+" rows cannot be created here")
	}
	values, err := editableValues(e, payload)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields provided")
	}

	// Map inserts skip hooks and auto timestamps, so set them here.
	id := uuid.New()
	values[e.PrimaryKey] = id
	now := time.Now().UTC()
	for _, col := range e.autoTimes {
		values[col] = now
	}
	conn := s.base.DB(ctx)
	if err := conn.Model(e.New()).Create(values).Error; err != nil {
		return nil, writeError(err, "create row")
	}
	return s.find(ctx, conn, e, id)
}

func (s *service) Update(ctx context.Context, name string, id uuid.UUID, payload map[string]any) (any, error) {
	e, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	values, err := editableValues(e, payload)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields provided")
	}

	conn := s.base.DB(ctx)
	res := conn.Model(e.New()).Where(e.PrimaryKey+" = ?", id).Updates(values)
	if res.Error != nil {
		return nil, writeError(res.Error, "update row")
	}
	if res.RowsAffected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, e.Name+" not found")
	}
	return s.find(ctx, conn, e, id)
}

func (s *service) Delete(ctx context.Context, name string, id uuid.UUID) error {
	e, err := s.lookup(name)
	if err != nil {
		return err
	}
	res := s.base.DB(ctx).Where(e.PrimaryKey+" = ?", id).Delete(e.New())
	if res.Error != nil {
		return writeError(res.Error, "delete row")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, e.Name+" not found")
	}
	return nil
}

func (s *service) lookup(name string) (Entity, error) {
	e, ok := s.registry.Lookup(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		return Entity{}, pkgerrors.New(pkgerrors.CodeNotFound, "unknown model").
			WithDetails(map[string]any{"model": name})
	}
	return e, nil
}

func (s *service) find(ctx context.Context, conn *gorm.DB, e Entity, id uuid.UUID) (any, error) {
	row := e.New()
	if err := conn.WithContext(ctx).Where(e.PrimaryKey+" = ?", id).First(row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, e.Name+" not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load row")
	}
	return row, nil
}

// editableValues keeps payload keys that are editable columns and rejects the rest.
func editableValues(e Entity, payload map[string]any) (map[string]any, error) {
	values := make(map[string]any, len(payload))
	var unknown []string
	for k, v := range payload {
		if !slices.Contains(e.Editable, k) {
			unknown = append(unknown, k)
			continue
		}
		values[k] = v
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "fields are not editable").
			WithDetails(map[string]any{"fields": unknown, "editable": e.Editable})
	}
	return values, nil
}

func writeError(err error, op string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "row conflicts with an existing record")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}
