package shopify

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldPath_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want FieldPath
	}{
		{`"title"`, FieldPath{"title"}},
		{`["input","variants","0","price"]`, FieldPath{"input", "variants", "0", "price"}},
		{`null`, nil},
		{`[]`, FieldPath{}},
	}
	for _, tt := range tests {
		var ue struct {
			Field FieldPath `json:"field"`
		}
		require.NoError(t, json.Unmarshal([]byte(fmt.Sprintf(`{"field":%s}`, tt.in)), &ue), tt.in)
		assert.Equal(t, tt.want, ue.Field, tt.in)
	}

	var f FieldPath
	assert.Error(t, json.Unmarshal([]byte(`42`), &f))
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{
			invalid("title", "title is required"),
			"shopify: invalid title: title is required",
		},
		{
			userErrors(opProductCreate, []UserError{
				{Field: FieldPath{"title"}, Message: "too short"},
				{Message: "Product could not be saved"},
			}),
			"shopify: productCreate: user errors: title: too short; Product could not be saved",
		},
		{
			&Error{Kind: KindAuthentication, Op: opProductCreate, StatusCode: 401, Err: &StatusError{StatusCode: 401}},
			"shopify: productCreate: authentication failed (status 401): server returned 401 Unauthorized",
		},
		{
			&Error{Kind: KindTransport, Op: opMetafieldsSet, ProductID: "gid://shopify/Product/1", Err: errors.New("connection reset")},
			"shopify: metafieldsSet: transport error: connection reset (product gid://shopify/Product/1 was created)",
		},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := error(&Error{Kind: KindTransport, Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, errors.Cause(err))
	assert.True(t, IsKind(errors.Wrap(err, "create"), KindTransport))
	assert.False(t, IsKind(err, KindValidation))
	assert.False(t, IsKind(cause, KindTransport))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "authentication", KindAuthentication.String())
	assert.Equal(t, "request", KindRequest.String())
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "user error", KindUserError.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
