package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkcod/eatadmin/internal/errs"
	"github.com/darkcod/eatadmin/internal/model"
	"github.com/darkcod/eatadmin/internal/session"
)

func TestProducts_DecodeOrFail(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		client := newTestClient(t, &memStore{token: adminToken(t)}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/adminapi/products", r.URL.Path)
			w.Write([]byte(`[{"id":1,"name":"Borscht","price":7.5}]`))
		}))

		products, err := client.Products(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Borscht", products[0].Name)
		assert.Equal(t, 7.5, products[0].Price)
	})

	t.Run("detail field wins", func(t *testing.T) {
		client := newTestClient(t, &memStore{token: adminToken(t)}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"detail":"X"}`))
		}))

		_, err := client.Products(context.Background(), nil)
		status, ok := errs.StatusOf(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.EqualError(t, err, "X (status 422)")
	})

	t.Run("unparsable body falls back", func(t *testing.T) {
		client := newTestClient(t, &memStore{token: adminToken(t)}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("not json"))
		}))

		_, err := client.Products(context.Background(), nil)
		assert.Contains(t, err.Error(), "failed to load products")
	})
}

func TestUpdateOrderStatus_RequestShape(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	var gotBody model.StatusPatch
	client := newTestClient(t, &memStore{token: adminToken(t)}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(model.Order{ID: 7, Status: model.StatusCooking})
	}))

	o, err := client.UpdateOrderStatus(context.Background(), 7, model.StatusCooking, nil)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/adminapi/orders/7", gotPath)
	assert.Equal(t, model.StatusCooking, gotBody.Status)
	assert.Equal(t, model.StatusCooking, o.Status)
}

func TestDeleteProduct(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		var gotMethod, gotPath string
		client := newTestClient(t, &memStore{token: adminToken(t)}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod, gotPath = r.Method, r.URL.Path
			w.WriteHeader(http.StatusNoContent)
		}))

		require.NoError(t, client.DeleteProduct(context.Background(), 3, nil))
		assert.Equal(t, http.MethodDelete, gotMethod)
		assert.Equal(t, "/adminapi/products/3", gotPath)
	})

	t.Run("failure", func(t *testing.T) {
		client := newTestClient(t, &memStore{token: adminToken(t)}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))

		err := client.DeleteProduct(context.Background(), 3, nil)
		status, ok := errs.StatusOf(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, status)
		assert.Contains(t, err.Error(), "failed to delete product")
	})
}

// Login with valid credentials, persist, reread, gate before and after expiry.
func TestScenario_LoginStoreValidity(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(2 * time.Hour)
	issued, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin@example.com", "role": "admin", "exp": exp.Unix(),
	}).SignedString([]byte("backend-key"))
	require.NoError(t, err)

	store := &memStore{}
	client := newTestClient(t, store, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": issued, "token_type": "bearer"})
	}))
	ctrl := session.NewController(store, client, nil)

	st, err := ctrl.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, issued, st.Token)
	assert.Equal(t, "admin@example.com", st.Subject)

	reread, ok := store.Read(context.Background())
	require.True(t, ok)
	assert.Equal(t, issued, reread)
	assert.True(t, session.IsAdminToken(reread))

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin@example.com", "role": "admin", "exp": time.Now().Add(-time.Second).Unix(),
	}).SignedString([]byte("backend-key"))
	require.NoError(t, err)
	assert.False(t, session.IsAdminToken(expired))
}

// Authenticated list against a backend returning 403 empties the session.
func TestScenario_ForbiddenListInvalidatesSession(t *testing.T) {
	t.Parallel()

	store := &memStore{token: adminToken(t)}
	client := newTestClient(t, store, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	ctrl := session.NewController(store, client, nil)
	ctrl.Bootstrap(context.Background())
	require.True(t, ctrl.State().LoggedIn())

	_, err := client.Products(context.Background(), ctrl.Invalidate)
	status, ok := errs.StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, status)

	_, ok = store.Read(context.Background())
	assert.False(t, ok, "store must be empty")
	assert.False(t, ctrl.State().LoggedIn(), "in-memory session must be reset")
}

// Create a category, then list: the new category appears exactly once.
func TestScenario_CreateThenListCategories(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	categories := []model.Category{}
	nextID := int64(1)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/adminapi/categories":
			var in model.CategoryInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			cat := model.Category{ID: nextID, Name: in.Name, Description: in.Description}
			nextID++
			categories = append(categories, cat)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(cat)
		case r.Method == http.MethodGet && r.URL.Path == "/adminapi/categories":
			json.NewEncoder(w).Encode(categories)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	client := newTestClient(t, &memStore{token: adminToken(t)}, handler)

	created, err := client.CreateCategory(context.Background(), model.CategoryInput{Name: "Soups", Description: "Hot"}, nil)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	list, err := client.Categories(context.Background(), nil)
	require.NoError(t, err)

	count := 0
	for _, c := range list {
		if c.ID == created.ID {
			count++
			assert.Equal(t, "Soups", c.Name)
		}
	}
	assert.Equal(t, 1, count, "created category must appear exactly once")
}
