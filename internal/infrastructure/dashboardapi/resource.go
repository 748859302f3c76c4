package dashboardapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/admindash/console/internal/core/domain"
	"github.com/admindash/console/internal/infrastructure/httpclient"
)

// Doer is the HTTP client surface the service needs.
type Doer interface {
	Do(ctx context.Context, r httpclient.Request, out any) error
}

// Collection is a paginated listing at path whose response wraps the items
// under itemsKey.
type Collection[T any] struct {
	client   Doer
	path     string
	itemsKey string
}

// NewCollection binds a read-only listing to client.
func NewCollection[T any](client Doer, path, itemsKey string) *Collection[T] {
	return &Collection[T]{client: client, path: path, itemsKey: itemsKey}
}

// List fetches one page. The search parameter is omitted when empty.
func (l *Collection[T]) List(ctx context.Context, q domain.PageQuery) (*domain.Page[T], error) {
	var raw json.RawMessage
	req := httpclient.Request{Method: http.MethodGet, Path: l.path, Query: PageValues(q)}
	if err := l.client.Do(ctx, req, &raw); err != nil {
		return nil, err
	}
	return decodePage[T](raw, l.itemsKey)
}

// Resource is a Collection that also supports create, update and delete.
// T is the entity, In the create/update payload.
type Resource[T, In any] struct {
	*Collection[T]
}

// NewResource binds a writable collection to client.
func NewResource[T, In any](client Doer, path, itemsKey string) *Resource[T, In] {
	return &Resource[T, In]{Collection: NewCollection[T](client, path, itemsKey)}
}

// Create posts a new entity.
func (r *Resource[T, In]) Create(ctx context.Context, in In) (*T, error) {
	var out T
	req := httpclient.Request{Method: http.MethodPost, Path: r.path, Body: in}
	if err := r.client.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces the entity with the given id.
func (r *Resource[T, In]) Update(ctx context.Context, id int64, in In) (*T, error) {
	var out T
	req := httpclient.Request{Method: http.MethodPut, Path: r.itemPath(id), Body: in}
	if err := r.client.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the entity with the given id.
func (r *Resource[T, In]) Delete(ctx context.Context, id int64) error {
	return r.client.Do(ctx, httpclient.Request{Method: http.MethodDelete, Path: r.itemPath(id)}, nil)
}

func (r *Resource[T, In]) itemPath(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

// PageValues encodes q as page/size/search query parameters.
func PageValues(q domain.PageQuery) url.Values {
	q = q.Normalize()
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("size", strconv.Itoa(q.Size))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

func decodePage[T any](raw []byte, itemsKey string) (*domain.Page[T], error) {
	page := &domain.Page[T]{Items: []T{}}
	if len(raw) == 0 {
		return page, nil
	}

	if items := gjson.GetBytes(raw, itemsKey); items.IsArray() {
		if err := json.Unmarshal([]byte(items.Raw), &page.Items); err != nil {
			return nil, domain.NewRequestError(err)
		}
	}
	page.CurrentPage = int(gjson.GetBytes(raw, "currentPage").Int())
	page.TotalItems = gjson.GetBytes(raw, "totalItems").Int()
	page.TotalPages = int(gjson.GetBytes(raw, "totalPages").Int())
	return page, nil
}
