package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testCatalog() []Product {
	return []Product{
		{ID: 1, Title: "Canvas Backpack", Price: 109.95, Description: "Fits laptops up to 15 inches", Category: "men's clothing", Rating: Rating{Rate: 3.9, Count: 120}},
		{ID: 2, Title: "Slim Fit T-Shirt", Price: 22.3, Description: "Lightweight casual wear", Category: "men's clothing", Rating: Rating{Rate: 4.1, Count: 259}},
		{ID: 3, Title: "Gold Petite Micropave Ring", Price: 168, Description: "Inspired by nature", Category: "jewelery", Rating: Rating{Rate: 3.9, Count: 70}},
		{ID: 4, Title: "Portable SSD 1TB", Price: 109, Description: "USB 3.0 external drive", Category: "electronics", Rating: Rating{Rate: 2.9, Count: 470}},
	}
}

func TestGetProducts(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"title":"Canvas Backpack","price":109.95,"category":"men's clothing","rating":{"rate":3.9,"count":120}}]`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	products, err := client.GetProducts(context.Background())
	if err != nil {
		t.Fatalf("GetProducts: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if products[0].ID != 1 || products[0].Rating.Count != 120 {
		t.Fatalf("unexpected product %+v", products[0])
	}
}

func TestGetProduct(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/2":
			_, _ = w.Write([]byte(`{"id":2,"title":"Slim Fit T-Shirt","price":22.3}`))
		case "/products/404":
			w.WriteHeader(http.StatusNotFound)
		case "/products/999":
			// the real API answers 200 with a null body for unknown IDs
			_, _ = w.Write([]byte("null"))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	ctx := context.Background()

	product, err := client.GetProduct(ctx, 2)
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if product.Title != "Slim Fit T-Shirt" {
		t.Fatalf("unexpected product %+v", product)
	}

	if _, err := client.GetProduct(ctx, 404); err == nil {
		t.Fatal("expected 404 to surface as an error")
	}
	if _, err := client.GetProduct(ctx, 999); err == nil {
		t.Fatal("expected null body to surface as not found")
	}
	if _, err := client.GetProduct(ctx, 0); err == nil {
		t.Fatal("expected non-positive id to be rejected")
	}
}

func TestGetCategories(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/categories" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`["electronics","jewelery"]`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	categories, err := client.GetCategories(context.Background())
	if err != nil {
		t.Fatalf("GetCategories: %v", err)
	}
	if len(categories) != 2 || categories[0] != "electronics" {
		t.Fatalf("unexpected categories %v", categories)
	}
}

func TestGetProductsUpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	if _, err := client.GetProducts(context.Background()); err == nil {
		t.Fatal("expected 5xx to surface as an error")
	}
}
