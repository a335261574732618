package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"orders", "Orders"},
		{"shipments", "Shipments"},
		{"orderItems", "OrderItems"},
		{"Orders", "Orders"},
		{"é", "É"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Capitalize(tt.in))
		})
	}
}

func TestCallbackName(t *testing.T) {
	tests := []struct {
		method   string
		endpoint string
		want     string
	}{
		{"GET", "orders", "getOrders"},
		{"POST", "orders", "postOrders"},
		{"delete", "shipments", "deleteShipments"},
		{"Patch", "orderItems", "patchOrderItems"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, CallbackName(tt.method, tt.endpoint))
		})
	}
}

func TestRouteNamespaceAndClassName(t *testing.T) {
	assert.Equal(t, "acme/v2", RouteNamespace("acme", "v2"))
	assert.Equal(t, "acme.Shipments", ClassName("acme", "shipments"))
}

func TestReference(t *testing.T) {
	ref := Reference{Class: "acme.Orders", Method: "getOrders"}
	assert.Equal(t, "acme.Orders::getOrders", ref.String())
	assert.False(t, ref.IsZero())
	assert.True(t, Reference{}.IsZero())
}

func TestPackageName(t *testing.T) {
	tests := []struct {
		namespace string
		want      string
	}{
		{"acme", "acme"},
		{"acme.shop", "shop"},
		{"Acme/Shop-Front", "shopfront"},
		{"acme\\v2", "v2"},
		{"acme.1shop", "endpoints1shop"},
		{"", "endpoints"},
	}
	for _, tt := range tests {
		t.Run(tt.namespace, func(t *testing.T) {
			assert.Equal(t, tt.want, packageName(tt.namespace))
		})
	}
}
