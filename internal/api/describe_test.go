package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fooddelight-backend-go/internal/middleware"
)

func TestDescribeContentCreate(t *testing.T) {
	req := &middleware.RequestInfo{
		Form: map[string]string{"title": "Spring Menu", "category": "banner"},
	}
	desc, err := DescribeContentCreate(req, nil)
	require.NoError(t, err)
	assert.Equal(t, `New content created: "Spring Menu" in category "banner"`, desc)
}

func TestDescribeContentUpdateListsChanges(t *testing.T) {
	req := &middleware.RequestInfo{
		Params: map[string]string{"id": "c42"},
		Form:   map[string]string{"title": "Autumn Menu", "isActive": "false"},
	}
	desc, err := DescribeContentUpdate(req, nil)
	require.NoError(t, err)
	assert.Equal(t, `Content updated (title: "Autumn Menu", status: false) - ID: c42`, desc)
}

func TestDescribeContentUpdateNoFields(t *testing.T) {
	req := &middleware.RequestInfo{Params: map[string]string{"id": "c42"}}
	desc, err := DescribeContentUpdate(req, nil)
	require.NoError(t, err)
	assert.Equal(t, "Content updated - ID: c42", desc)
}

func TestDescribeContentDeleteReadsResponse(t *testing.T) {
	body := []byte(`{"message":"Content deleted","data":{"id":"c1","title":"Old Banner","category":"banner"}}`)
	desc, err := DescribeContentDelete(nil, body)
	require.NoError(t, err)
	assert.Equal(t, `Content deleted: "Old Banner" from category "banner"`, desc)
}

func TestDescribeContentDeleteUnparseableResponse(t *testing.T) {
	_, err := DescribeContentDelete(nil, []byte("not json"))
	assert.Error(t, err)

	_, err = DescribeContentDelete(nil, []byte(`{"message":"gone"}`))
	assert.Error(t, err)
}

func TestDescribeGalleryCreateWithPrice(t *testing.T) {
	req := &middleware.RequestInfo{
		Form: map[string]string{"title": "Tiramisu", "category": "dessert", "price": "8.50"},
	}
	desc, err := DescribeGalleryCreate(req, nil)
	require.NoError(t, err)
	assert.Equal(t, `New gallery item created: "Tiramisu" in category "dessert" with price $8.50`, desc)
}

func TestDescribeGalleryCreateWithoutPrice(t *testing.T) {
	req := &middleware.RequestInfo{
		Form: map[string]string{"title": "House Water", "category": "beverage"},
	}
	desc, err := DescribeGalleryCreate(req, nil)
	require.NoError(t, err)
	assert.Equal(t, `New gallery item created: "House Water" in category "beverage"`, desc)
}

func TestDescribeSettingsUpdateNeverEchoesValues(t *testing.T) {
	req := &middleware.RequestInfo{
		Body: map[string]interface{}{"newEmail": "a@b.c", "newPassword": "hunter22"},
	}
	desc, err := DescribeSettingsUpdate(req, nil)
	require.NoError(t, err)
	assert.Equal(t, "Admin settings updated: email, password", desc)
	assert.NotContains(t, desc, "hunter22")
	assert.NotContains(t, desc, "a@b.c")
}

func TestDescribeContactSubmit(t *testing.T) {
	req := &middleware.RequestInfo{
		Body: map[string]interface{}{"name": "Pat", "email": "pat@example.com"},
	}
	desc, err := DescribeContactSubmit(req, nil)
	require.NoError(t, err)
	assert.Equal(t, `New contact message from "Pat" <pat@example.com>`, desc)

	_, err = DescribeContactSubmit(&middleware.RequestInfo{}, nil)
	assert.Error(t, err)
}
