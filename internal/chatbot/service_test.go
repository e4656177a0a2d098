package chatbot

import (
	"context"
	"strings"
	"testing"

	"github.com/buyfrescapp/frescapp-backend/internal/catalog"
	"github.com/buyfrescapp/frescapp-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type searchCatalog struct {
	products []catalog.Product
}

func (f *searchCatalog) List(context.Context) ([]catalog.Product, error)     { return f.products, nil }
func (f *searchCatalog) Featured(context.Context) ([]catalog.Product, error) { return nil, nil }
func (f *searchCatalog) Grouped(context.Context) ([]catalog.Group, error)    { return nil, nil }

func (f *searchCatalog) Get(context.Context, uuid.UUID) (catalog.Product, error) {
	return catalog.Product{}, nil
}

func (f *searchCatalog) Search(_ context.Context, query string) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range f.products {
		if query != "" && strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func setupChatbotDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS faq_entries (
  id TEXT PRIMARY KEY,
  keywords TEXT NOT NULL,
  reply TEXT NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedFAQ(t *testing.T, db *gorm.DB, keywords []string, reply string) {
	t.Helper()
	entry := models.FAQEntry{
		ID:       uuid.New(),
		Keywords: pq.StringArray(keywords),
		Reply:    reply,
	}
	require.NoError(t, db.Create(&entry).Error)
}

func newTestService(t *testing.T, db *gorm.DB, cat catalog.Service) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), cat, nil)
	require.NoError(t, err)
	return svc
}

func TestRespondMatchesFAQKeyword(t *testing.T) {
	db := setupChatbotDB(t)
	seedFAQ(t, db, []string{"domicilio", "envio"}, "Entregamos a domicilio todos los días.")
	svc := newTestService(t, db, &searchCatalog{})

	reply, err := svc.Respond(context.Background(), "¿Hacen DOMICILIO en mi barrio?")
	require.NoError(t, err)
	assert.Equal(t, "Entregamos a domicilio todos los días.", reply.Text)
}

func TestRespondFallsBackToProductSearch(t *testing.T) {
	db := setupChatbotDB(t)
	svc := newTestService(t, db, &searchCatalog{products: []catalog.Product{
		{ID: uuid.New(), Name: "Manzana Roja", PricePesos: 2000},
	}})

	reply, err := svc.Respond(context.Background(), "manzana")
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "Manzana Roja")
	assert.Contains(t, reply.Text, "$2000")
}

func TestRespondDefaultReply(t *testing.T) {
	db := setupChatbotDB(t)
	svc := newTestService(t, db, &searchCatalog{})

	reply, err := svc.Respond(context.Background(), "xyz")
	require.NoError(t, err)
	assert.Equal(t, "No encontré productos con ese nombre.", reply.Text)

	reply, err = svc.Respond(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, "No encontré productos con ese nombre.", reply.Text)
}

func TestGreeting(t *testing.T) {
	db := setupChatbotDB(t)
	svc := newTestService(t, db, &searchCatalog{})
	assert.Contains(t, svc.Greeting().Text, "Frescapp")
}
