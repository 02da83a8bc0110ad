package server_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/appleboy/gofight/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type itemResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func decodeItem(t *testing.T, r gofight.HTTPResponse) itemResponse {
	var v itemResponse
	require.NoError(t, json.Unmarshal(r.Body.Bytes(), &v))
	return v
}

func decodeItems(t *testing.T, r gofight.HTTPResponse) []itemResponse {
	var v []itemResponse
	require.NoError(t, json.Unmarshal(r.Body.Bytes(), &v))
	return v
}

func createItems(t *testing.T, engine *echo.Echo, r *gofight.RequestConfig) {
	items := []gofight.D{
		{"name": "Item 1", "description": "First test item"},
		{"name": "Item 2", "description": "Second test item"},
		{"name": "Item 3", "description": "Third test item"},
	}

	for _, item := range items {
		r.POST("/api/v1/items").SetJSON(item).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			require.Equal(t, http.StatusCreated, r.Code)
		})
	}
}

func TestRequestItemsEmpty(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/api/v1/items").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `[]`, r.Body.String())
	})
}

func TestRequestItemLifecycle(t *testing.T) {
	for name, open := range map[string]func() (*echo.Echo, *gofight.RequestConfig, func()){
		"memory": func() (*echo.Echo, *gofight.RequestConfig, func()) {
			engine, _, r, cleanup := setup()
			return engine, r, cleanup
		},
		"storm": func() (*echo.Echo, *gofight.RequestConfig, func()) {
			engine, _, r, cleanup := setupStorm(t)
			return engine, r, cleanup
		},
	} {
		t.Run(name, func(t *testing.T) {
			engine, r, cleanup := open()
			defer cleanup()

			var created itemResponse
			r.POST("/api/v1/items").SetJSON(gofight.D{
				"name":        "Test Item",
				"description": "A test item",
			}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
				assert.Equal(t, http.StatusCreated, r.Code)

				created = decodeItem(t, r)
				assert.Equal(t, 1, created.ID)
				assert.Equal(t, "Test Item", created.Name)
				if assert.NotNil(t, created.Description) {
					assert.Equal(t, "A test item", *created.Description)
				}
				assert.WithinDuration(t, time.Now(), created.CreatedAt, 2*time.Second)
				assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))
			})

			r.GET("/api/v1/items/1").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
				assert.Equal(t, http.StatusOK, r.Code)

				item := decodeItem(t, r)
				assert.Equal(t, created.ID, item.ID)
				assert.Equal(t, created.Name, item.Name)
				assert.Equal(t, created.Description, item.Description)
				assert.True(t, created.CreatedAt.Equal(item.CreatedAt))
			})

			r.DELETE("/api/v1/items/1").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
				assert.Equal(t, http.StatusOK, r.Code)
				assert.JSONEq(t, `{"message":"Item deleted successfully"}`, r.Body.String())
			})

			r.GET("/api/v1/items/1").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
				assert.Equal(t, http.StatusNotFound, r.Code)
				assert.JSONEq(t, `{"detail":"Item not found"}`, r.Body.String())
			})

			r.POST("/api/v1/items").SetJSON(gofight.D{
				"name": "Next Item",
			}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
				assert.Equal(t, http.StatusCreated, r.Code)
				assert.Equal(t, 2, decodeItem(t, r).ID)
			})
		})
	}
}

func TestRequestCreateItemWithoutDescription(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.POST("/api/v1/items").SetJSON(gofight.D{
		"name": "Test Item",
	}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusCreated, r.Code)

		var v map[string]any
		require.NoError(t, json.Unmarshal(r.Body.Bytes(), &v))
		assert.Equal(t, "Test Item", v["name"])
		assert.Contains(t, v, "description")
		assert.Nil(t, v["description"])
	})
}

func TestRequestCreateItemValidation(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.POST("/api/v1/items").SetJSON(gofight.D{
		"description": "No name",
	}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnprocessableEntity, r.Code)
		assert.JSONEq(t, `{"detail":[{"loc":["body","name"],"msg":"field required","type":"value_error.missing"}]}`, r.Body.String())
	})

	r.POST("/api/v1/items").SetJSON(gofight.D{
		"name": "",
	}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnprocessableEntity, r.Code)
		assert.JSONEq(t, `{"detail":[{"loc":["body","name"],"msg":"field required","type":"value_error.missing"}]}`, r.Body.String())
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/items", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"detail":[{"loc":["body"],"msg":"field required","type":"value_error.missing"}]}`, w.Body.String())

	r.POST("/api/v1/items").SetJSON(gofight.D{
		"name": 42,
	}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnprocessableEntity, r.Code)
		assert.JSONEq(t, `{"detail":[{"loc":["body","name"],"msg":"value is not a valid string","type":"type_error.string"}]}`, r.Body.String())
	})

	r.POST("/api/v1/items").
		SetHeader(gofight.H{"Content-Type": "application/json"}).
		SetBody(`{"name": "Test`).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusUnprocessableEntity, r.Code)
			assert.Contains(t, r.Body.String(), `"type":"value_error.jsondecode"`)
		})

	r.GET("/api/v1/items").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.JSONEq(t, `[]`, r.Body.String())
	})
}

func TestRequestCreateItemContentType(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	// gofight always sets a Content-Type on bodies.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", strings.NewReader(`{"name":"Untyped Item","description":"Sent without Content-Type"}`))
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var item itemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))
	assert.Equal(t, "Untyped Item", item.Name)
	assert.Equal(t, "Sent without Content-Type", *item.Description)

	r.POST("/api/v1/items").
		SetHeader(gofight.H{"Content-Type": "text/plain"}).
		SetBody(`{"name":"Plain Item"}`).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			assert.Equal(t, http.StatusUnprocessableEntity, r.Code)
			assert.JSONEq(t, `{"detail":[{"loc":["body"],"msg":"JSON body expected","type":"type_error.content_type"}]}`, r.Body.String())
		})

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/v1/items/1", strings.NewReader(`{"name":"Renamed Item"}`))
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Renamed Item"`)

	r.GET("/api/v1/items").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Len(t, decodeItems(t, r), 1)
	})
}

func TestRequestUpdateItem(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	var created itemResponse
	r.POST("/api/v1/items").SetJSON(gofight.D{
		"name":        "Test Item",
		"description": "A test item for testing purposes",
	}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		created = decodeItem(t, r)
	})

	path := fmt.Sprintf("/api/v1/items/%d", created.ID)
	r.PUT(path).SetJSON(gofight.D{
		"name":        "Updated Item",
		"description": "Updated description",
	}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		updated := decodeItem(t, r)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Updated Item", updated.Name)
		assert.Equal(t, "Updated description", *updated.Description)
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
		assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
	})

	r.PUT(path).SetJSON(gofight.D{
		"name": "Updated Item",
	}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.Nil(t, decodeItem(t, r).Description)
	})

	r.PUT(path).SetJSON(gofight.D{}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnprocessableEntity, r.Code)
	})

	r.GET(path).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, "Updated Item", decodeItem(t, r).Name)
	})
}

func TestRequestNonexistentItem(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	createItems(t, engine, r)

	r.GET("/api/v1/items/999").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
		assert.JSONEq(t, `{"detail":"Item not found"}`, r.Body.String())
	})

	r.PUT("/api/v1/items/999").SetJSON(gofight.D{
		"name": "Updated Item",
	}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
		assert.JSONEq(t, `{"detail":"Item not found"}`, r.Body.String())
	})

	r.DELETE("/api/v1/items/999").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
		assert.JSONEq(t, `{"detail":"Item not found"}`, r.Body.String())
	})

	r.GET("/api/v1/items").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		items := decodeItems(t, r)
		require.Len(t, items, 3)
		for i, item := range items {
			assert.Equal(t, i+1, item.ID)
			assert.Equal(t, fmt.Sprintf("Item %d", i+1), item.Name)
		}
	})
}

func TestRequestInvalidItemID(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	r.GET("/api/v1/items/abc").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnprocessableEntity, r.Code)
		assert.JSONEq(t, `{"detail":[{"loc":["path","id"],"msg":"value is not a valid integer","type":"type_error.integer"}]}`, r.Body.String())
	})

	r.DELETE("/api/v1/items/1.5").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnprocessableEntity, r.Code)
	})
}

func TestRequestItemsPagination(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	createItems(t, engine, r)

	r.GET("/api/v1/items?limit=2&offset=0").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.Len(t, decodeItems(t, r), 2)
	})

	r.GET("/api/v1/items?limit=2&offset=2").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		items := decodeItems(t, r)
		require.Len(t, items, 1)
		assert.Equal(t, "Item 3", items[0].Name)
	})

	r.GET("/api/v1/items?offset=10").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `[]`, r.Body.String())
	})

	r.GET("/api/v1/items?limit=9223372036854775807&offset=1").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		items := decodeItems(t, r)
		require.Len(t, items, 2)
		assert.Equal(t, "Item 2", items[0].Name)
		assert.Equal(t, "Item 3", items[1].Name)
	})

	r.GET("/api/v1/items?limit=-9223372036854775808&offset=-1").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `[]`, r.Body.String())
	})

	r.GET("/api/v1/items?limit=ten").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnprocessableEntity, r.Code)
		assert.JSONEq(t, `{"detail":[{"loc":["query","limit"],"msg":"value is not a valid integer","type":"type_error.integer"}]}`, r.Body.String())
	})
}

func TestRequestItemsSearch(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	createItems(t, engine, r)

	r.GET("/api/v1/items").SetQuery(gofight.H{"search": "Item 1"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		items := decodeItems(t, r)
		require.Len(t, items, 1)
		assert.Equal(t, "Item 1", items[0].Name)
	})

	r.GET("/api/v1/items?search=First").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		items := decodeItems(t, r)
		require.Len(t, items, 1)
		assert.Contains(t, *items[0].Description, "First")
	})

	r.GET("/api/v1/items?search=TEST&limit=1&offset=2").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		items := decodeItems(t, r)
		require.Len(t, items, 1)
		assert.Equal(t, "Item 3", items[0].Name)
	})

	r.GET("/api/v1/items?search=nothing").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.JSONEq(t, `[]`, r.Body.String())
	})
}
