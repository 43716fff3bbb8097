package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPClient_Request_Success(t *testing.T) {
	// Mock server setup
	mockResponse := map[string]string{"message": "success"}
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/test-endpoint" {
			t.Errorf("Expected endpoint '/test-endpoint', got '%s'", r.URL.Path)
		}
		if r.Header.Get("X-Api-Key") != "k" {
			t.Errorf("Expected header X-Api-Key 'k', got '%s'", r.Header.Get("X-Api-Key"))
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(mockResponse)
	}))
	defer mockServer.Close()

	// Test setup
	client := NewHTTPClient(mockServer.URL, time.Second)
	var response map[string]string

	// Act
	err := client.Request(context.Background(), "GET", "/test-endpoint", map[string]string{"X-Api-Key": "k"}, nil, &response)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if response["message"] != "success" {
		t.Errorf("Expected response message to be 'success', got '%s'", response["message"])
	}
}

func TestHTTPClient_Request_Failure(t *testing.T) {
	// Mock server setup
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "bad request"}`))
	}))
	defer mockServer.Close()

	// Test setup
	client := NewHTTPClient(mockServer.URL, 0)
	var response map[string]string

	// Act
	err := client.Request(context.Background(), "POST", "/test-endpoint", nil, map[string]string{"key": "value"}, &response)

	// Assert
	if err == nil {
		t.Fatalf("Expected an error, got nil")
	}

	expectedError := "unexpected status code: 400 Bad Request"
	if err.Error() != expectedError {
		t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected a *StatusError with code 400, got %v", err)
	}
}

func TestHTTPClient_Request_Cancelled(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer mockServer.Close()

	client := NewHTTPClient(mockServer.URL, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Request(ctx, "GET", "/", nil, nil, nil)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}
