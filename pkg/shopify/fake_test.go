package shopify

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

type apiCall struct {
	Op        string
	URL       string
	Token     string
	Variables map[string]interface{}
}

type handler func(vars map[string]interface{}) (*http.Response, error)

// fakeAdminAPI answers GraphQL documents by operation name. Operations
// without a handler get a successful payload.
type fakeAdminAPI struct {
	t        *testing.T
	mu       sync.Mutex
	calls    []apiCall
	handlers map[string]handler
	products int
}

func newFakeAdminAPI(t *testing.T) *fakeAdminAPI {
	return &fakeAdminAPI{t: t, handlers: map[string]handler{}}
}

func (f *fakeAdminAPI) on(op string, h handler) *fakeAdminAPI {
	f.handlers[op] = h
	return f
}

func (f *fakeAdminAPI) Calls() []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apiCall(nil), f.calls...)
}

func (f *fakeAdminAPI) Ops() []string {
	var ops []string
	for _, c := range f.Calls() {
		ops = append(ops, c.Op)
	}
	return ops
}

func (f *fakeAdminAPI) RoundTrip(r *http.Request) (*http.Response, error) {
	var body struct {
		Query     string                 `json:"query"`
		Variables map[string]interface{} `json:"variables"`
	}
	if !assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&body)) {
		return nil, fmt.Errorf("bad request body")
	}
	doc, perr := parser.ParseQuery(&ast.Source{Input: body.Query})
	if !assert.Nil(f.t, perr) || !assert.Len(f.t, doc.Operations, 1) {
		return nil, fmt.Errorf("bad query")
	}
	op := doc.Operations[0].Name

	f.mu.Lock()
	f.calls = append(f.calls, apiCall{
		Op:        op,
		URL:       r.URL.String(),
		Token:     r.Header.Get(accessTokenHeader),
		Variables: body.Variables,
	})
	h, ok := f.handlers[op]
	f.mu.Unlock()

	if ok {
		return h(body.Variables)
	}
	return f.success(op, body.Variables)
}

func (f *fakeAdminAPI) success(op string, vars map[string]interface{}) (*http.Response, error) {
	switch op {
	case opProductCreate:
		f.mu.Lock()
		f.products++
		id := fmt.Sprintf("gid://shopify/Product/%d", 1000+f.products)
		f.mu.Unlock()
		title, _ := vars["input"].(map[string]interface{})["title"].(string)
		return respond(http.StatusOK, fmt.Sprintf(`{"data":{"productCreate":{"product":{
			"id":%q,"title":%q,"handle":"example-product","status":"ACTIVE","tags":[],
			"options":[{"id":"gid://shopify/ProductOption/1","name":"Title","values":["Default Title"]}],
			"seo":{"title":null,"description":null},
			"variants":{"nodes":[{"id":"gid://shopify/ProductVariant/1","title":"Default Title","sku":"","price":"0.00","inventoryQuantity":0}]},
			"media":{"nodes":[]},
			"metafields":{"nodes":[]}
		},"userErrors":[]}}}`, id, title))
	case opProductVariantsCreate:
		vv, _ := vars["variants"].([]interface{})
		nodes := make([]string, 0, len(vv))
		for i, v := range vv {
			m := v.(map[string]interface{})
			nodes = append(nodes, fmt.Sprintf(`{"id":"gid://shopify/ProductVariant/%d","title":"V%d","sku":"","price":%q,"inventoryQuantity":0}`, 10+i, i, str(m["price"])))
		}
		return respond(http.StatusOK, fmt.Sprintf(`{"data":{"productVariantsBulkCreate":{"productVariants":[%s],"userErrors":[]}}}`, strings.Join(nodes, ",")))
	case opProductCreateMedia:
		mm, _ := vars["media"].([]interface{})
		nodes := make([]string, 0, len(mm))
		for i, v := range mm {
			m := v.(map[string]interface{})
			nodes = append(nodes, fmt.Sprintf(`{"id":"gid://shopify/MediaImage/%d","mediaContentType":%q,"alt":%q,"status":"UPLOADED"}`, 20+i, str(m["mediaContentType"]), str(m["alt"])))
		}
		return respond(http.StatusOK, fmt.Sprintf(`{"data":{"productCreateMedia":{"media":[%s],"mediaUserErrors":[]}}}`, strings.Join(nodes, ",")))
	case opCollectionAddProducts:
		return respond(http.StatusOK, fmt.Sprintf(`{"data":{"collectionAddProducts":{"collection":{"id":%q},"userErrors":[]}}}`, vars["id"]))
	case opMetafieldsSet:
		ff, _ := vars["metafields"].([]interface{})
		nodes := make([]string, 0, len(ff))
		for i, v := range ff {
			m := v.(map[string]interface{})
			nodes = append(nodes, fmt.Sprintf(`{"id":"gid://shopify/Metafield/%d","namespace":%q,"key":%q,"value":%q,"type":%q}`, 30+i, str(m["namespace"]), str(m["key"]), str(m["value"]), str(m["type"])))
		}
		return respond(http.StatusOK, fmt.Sprintf(`{"data":{"metafieldsSet":{"metafields":[%s],"userErrors":[]}}}`, strings.Join(nodes, ",")))
	}
	return respond(http.StatusOK, `{"errors":[{"message":"unknown operation"}]}`)
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}

func respond(status int, body string) (*http.Response, error) {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}, nil
}

func newTestService(t *testing.T, api *fakeAdminAPI, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{WithHTTPClient(&http.Client{Transport: api})}, opts...)
	s, err := NewService(Config{
		Shop:        "example",
		AccessToken: "shpat_test",
		LocationID:  "gid://shopify/Location/1",
	}, opts...)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return s
}
