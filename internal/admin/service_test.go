package admin

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/angelmondragon/bookhaven-backend/internal/repo/repotest"
	"github.com/angelmondragon/bookhaven-backend/pkg/db/models"
	"github.com/angelmondragon/bookhaven-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/bookhaven-backend/pkg/errors"
	"github.com/angelmondragon/bookhaven-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := repotest.NewDB(t)
	svc, err := NewService(DefaultRegistry(), conn)
	require.NoError(t, err)
	return svc, conn
}

func TestDefaultRegistryCoversEveryModel(t *testing.T) {
	_, conn := newTestService(t)
	reg := DefaultRegistry()
	assert.Len(t, reg.Entities(), len(models.All()))

	svc, err := NewService(reg, conn)
	require.NoError(t, err)

	byName := map[string]Entity{}
	for _, e := range svc.Entities() {
		byName[e.Name] = e
	}
	assert.Equal(t, []string{"id", "last_name", "first_name", "bio_data"}, byName["author"].Display)
	assert.Equal(t, []string{"status", "due_back"}, byName["bookinstance"].ListFilters)
	require.Len(t, byName["bookinstance"].Fieldsets, 2)
	assert.Equal(t, "Availability", byName["bookinstance"].Fieldsets[1].Title)
	assert.Contains(t, byName["genre"].Editable, "name")
	assert.NotContains(t, byName["genre"].Editable, "id")
	assert.NotContains(t, byName["user"].Display, "password_hash")
	assert.Equal(t, "order_id", byName["legacyorder"].PrimaryKey)
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(Register[models.Genre]("genre"), Register[models.Genre]("genre"))
	require.Error(t, err)
}

func TestCreateUpdateDeleteAuthor(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "author", map[string]any{"first_name": "Ursula", "last_name": "Le Guin"})
	require.NoError(t, err)
	author, ok := created.(*models.Author)
	require.True(t, ok)
	assert.Equal(t, "Le Guin", author.LastName)
	assert.False(t, author.CreatedAt.IsZero())

	updated, err := svc.Update(ctx, "author", author.ID, map[string]any{"bio_data": "Earthsea"})
	require.NoError(t, err)
	assert.Equal(t, "Earthsea", updated.(*models.Author).BioData)

	require.NoError(t, svc.Delete(ctx, "author", author.ID))
	var count int64
	require.NoError(t, conn.Model(&models.Author{}).Count(&count).Error)
	assert.Zero(t, count)

	err = svc.Delete(ctx, "author", author.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestCreateRejectsNonEditableFields(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), "author", map[string]any{"first_name": "A", "id": uuid.NewString()})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Create(context.Background(), "user", map[string]any{"email": "x@example.com"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestListFiltersAndPaginates(t *testing.T) {
	svc, conn := newTestService(t)
	book := repotest.SeedBook(t, conn, "Neuromancer", nil)
	due := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		repotest.SeedInstance(t, conn, book, enums.LoanStatusAvailable, nil, nil)
	}
	repotest.SeedInstance(t, conn, book, enums.LoanStatusOnLoan, nil, &due)

	res, err := svc.List(context.Background(), "bookinstance", url.Values{"status": {"a"}}, pagination.Params{Page: 1, PageSize: 2})
	require.NoError(t, err)
	rows, ok := res.Rows.(*[]models.BookInstance)
	require.True(t, ok)
	assert.Len(t, *rows, 2)
	assert.Equal(t, int64(3), res.Meta.Total)
	assert.True(t, res.Meta.HasNext)

	res, err = svc.List(context.Background(), "bookinstance", url.Values{"status": {"o"}, "imprint": {"ignored"}}, pagination.Params{})
	require.NoError(t, err)
	assert.Len(t, *res.Rows.(*[]models.BookInstance), 1)
}

func TestUnknownModel(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "spaceship", uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestGetLegacyOrderByOrderID(t *testing.T) {
	svc, conn := newTestService(t)
	order := &models.LegacyOrder{}
	repotest.Create(t, conn, order)

	got, err := svc.Get(context.Background(), "legacyorder", order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentMethodCOD, got.(*models.LegacyOrder).PaymentMethod)
}
