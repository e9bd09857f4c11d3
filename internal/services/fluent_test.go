package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/fluentctl/internal/models"
	"github.com/desertthunder/fluentctl/internal/shared"
)

func testConfig(baseURL string) *shared.Config {
	return &shared.Config{
		API:    shared.APIConfig{BaseURL: baseURL, Username: "admin", Password: "secret"},
		Client: shared.ClientConfig{TimeoutSeconds: 5, RateLimit: 1000},
	}
}

func TestFluentService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("Missing Credentials", func(t *testing.T) {
			_, err := NewFluentService(&shared.Config{}, nil)
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Trailing Slash Trimmed", func(t *testing.T) {
			srv, err := NewFluentService(testConfig("https://example.com/"), nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if srv.apiURL != "https://example.com/wp-json/fluent-crm/v2" {
				t.Errorf("unexpected api URL %s", srv.apiURL)
			}
		})

		t.Run("Basic Auth Header", func(t *testing.T) {
			srv, err := NewFluentService(testConfig("https://example.com"), nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			want := "Basic " + base64.StdEncoding.EncodeToString([]byte("admin:secret"))
			if srv.authHeader != want {
				t.Errorf("expected auth header %s, got %s", want, srv.authHeader)
			}
		})
	})

	t.Run("Request Headers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); !strings.HasPrefix(got, "Basic ") {
				t.Errorf("expected Basic auth header, got %q", got)
			}
			if r.Header.Get("X-Request-ID") == "" {
				t.Error("expected X-Request-ID header")
			}
			if r.Header.Get("Content-Type") != "application/json" {
				t.Errorf("expected JSON content type, got %s", r.Header.Get("Content-Type"))
			}
			json.NewEncoder(w).Encode(map[string]any{"tags": []any{}})
		}))
		defer server.Close()

		srv, _ := NewFluentService(testConfig(server.URL), nil)
		if _, err := srv.Tags(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("GetContact", func(t *testing.T) {
		t.Run("By Email", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/wp-json/fluent-crm/v2/subscribers/0" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if r.URL.Query().Get("get_by_email") != "jane@example.com" {
					t.Errorf("expected get_by_email query, got %s", r.URL.RawQuery)
				}
				json.NewEncoder(w).Encode(map[string]any{"subscriber": map[string]any{
					"id": 7, "email": "jane@example.com",
					"tags": []map[string]any{{"id": 1, "title": "Customer", "slug": "customer"}},
				}})
			}))
			defer server.Close()

			srv, _ := NewFluentService(testConfig(server.URL), nil)
			contact, err := srv.GetContact(context.Background(), models.ContactRef{Email: "jane@example.com"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if contact.ID != 7 {
				t.Errorf("expected contact ID 7, got %d", contact.ID)
			}
			if got := contact.TagIDs(); len(got) != 1 || got[0] != 1 {
				t.Errorf("expected tag IDs [1], got %v", got)
			}
		})

		t.Run("By ID", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/wp-json/fluent-crm/v2/subscribers/42" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				json.NewEncoder(w).Encode(map[string]any{"subscriber": map[string]any{"id": 42, "email": "x@example.com"}})
			}))
			defer server.Close()

			srv, _ := NewFluentService(testConfig(server.URL), nil)
			contact, err := srv.GetContact(context.Background(), models.ContactRef{ID: 42})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if contact.ID != 42 {
				t.Errorf("expected contact ID 42, got %d", contact.ID)
			}
		})

		t.Run("Missing Subscriber In Envelope", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{})
			}))
			defer server.Close()

			srv, _ := NewFluentService(testConfig(server.URL), nil)
			_, err := srv.GetContact(context.Background(), models.ContactRef{Email: "ghost@example.com"})
			if !errors.Is(err, shared.ErrContactNotFound) {
				t.Errorf("expected ErrContactNotFound, got %v", err)
			}
		})

		t.Run("Not Found Status", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"message":"Subscriber not found"}`))
			}))
			defer server.Close()

			srv, _ := NewFluentService(testConfig(server.URL), nil)
			_, err := srv.GetContact(context.Background(), models.ContactRef{ID: 999})
			if !errors.Is(err, shared.ErrContactNotFound) {
				t.Errorf("expected ErrContactNotFound, got %v", err)
			}
		})

		t.Run("Both Email And ID Rejected", func(t *testing.T) {
			srv, _ := NewFluentService(testConfig("https://example.com"), nil)
			_, err := srv.GetContact(context.Background(), models.ContactRef{Email: "a@b.c", ID: 1})
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	})

	t.Run("CreateContact", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			body, _ := io.ReadAll(r.Body)
			var payload map[string]any
			if err := json.Unmarshal(body, &payload); err != nil {
				t.Fatalf("failed to decode payload: %v", err)
			}
			if payload["status"] != "subscribed" {
				t.Errorf("expected default status subscribed, got %v", payload["status"])
			}
			if _, ok := payload["tags"]; !ok {
				t.Error("expected tags in payload")
			}
			json.NewEncoder(w).Encode(map[string]any{"message": "created"})
		}))
		defer server.Close()

		srv, _ := NewFluentService(testConfig(server.URL), nil)
		result, err := srv.CreateContact(context.Background(), models.NewContact{
			Email:     "new@example.com",
			FirstName: "New",
			LastName:  "Person",
			Tags:      []int64{1, 2},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result == nil {
			t.Error("expected decoded response")
		}
	})

	t.Run("UpdateSubscriber", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				t.Errorf("expected PUT, got %s", r.Method)
			}
			body, _ := io.ReadAll(r.Body)
			var payload map[string]any
			json.Unmarshal(body, &payload)
			if _, ok := payload["attach_tags"]; !ok {
				t.Error("expected attach_tags in payload")
			}
			if _, ok := payload["detach_tags"]; !ok {
				t.Error("expected detach_tags in payload")
			}
			if _, ok := payload["attach_lists"]; ok {
				t.Error("empty attach_lists should be omitted")
			}
			json.NewEncoder(w).Encode(map[string]any{"message": "updated"})
		}))
		defer server.Close()

		srv, _ := NewFluentService(testConfig(server.URL), nil)
		_, err := srv.UpdateSubscriber(context.Background(), 7, models.SubscriberPatch{
			AttachTags: []int64{30},
			DetachTags: []int64{10, 20},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("DeleteContact No Content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				t.Errorf("expected DELETE, got %s", r.Method)
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		srv, _ := NewFluentService(testConfig(server.URL), nil)
		result, err := srv.DeleteContact(context.Background(), 7)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		msg, ok := result.(map[string]string)
		if !ok || msg["message"] != "Operation successful, no content returned." {
			t.Errorf("expected no-content message, got %v", result)
		}
	})

	t.Run("Tags", func(t *testing.T) {
		t.Run("Unpaginated", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"tags": []map[string]any{
					{"id": 1, "title": "Customer", "slug": "customer"},
					{"id": 2, "title": "Lead", "slug": "lead"},
				}})
			}))
			defer server.Close()

			srv, _ := NewFluentService(testConfig(server.URL), nil)
			tags, err := srv.Tags(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(tags) != 2 {
				t.Fatalf("expected 2 tags, got %d", len(tags))
			}
			if tags[1].Slug != "lead" {
				t.Errorf("expected slug lead, got %s", tags[1].Slug)
			}
		})

		t.Run("Paginated", func(t *testing.T) {
			var server *httptest.Server
			server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				switch {
				case strings.HasSuffix(r.URL.Path, "/tags") && r.URL.Query().Get("page") == "":
					next := server.URL + "/wp-json/fluent-crm/v2/tags?page=2"
					json.NewEncoder(w).Encode(map[string]any{"tags": map[string]any{
						"data":          []map[string]any{{"id": 1, "title": "One", "slug": "one"}},
						"next_page_url": next,
					}})
				case r.URL.Query().Get("page") == "2":
					json.NewEncoder(w).Encode(map[string]any{"tags": map[string]any{
						"data":          []map[string]any{{"id": 2, "title": "Two", "slug": "two"}},
						"next_page_url": nil,
					}})
				default:
					t.Errorf("unexpected request %s", r.URL.String())
				}
			}))
			defer server.Close()

			srv, _ := NewFluentService(testConfig(server.URL), nil)
			tags, err := srv.Tags(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(tags) != 2 {
				t.Fatalf("expected 2 tags across pages, got %d", len(tags))
			}
			if tags[0].ID != 1 || tags[1].ID != 2 {
				t.Errorf("expected tags 1 and 2, got %v", tags)
			}
		})

		t.Run("Missing Key", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"unexpected": true})
			}))
			defer server.Close()

			srv, _ := NewFluentService(testConfig(server.URL), nil)
			_, err := srv.Tags(context.Background())
			if !errors.Is(err, shared.ErrUnexpectedFormat) {
				t.Errorf("expected ErrUnexpectedFormat, got %v", err)
			}
		})

		t.Run("Unrecognized Payload", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"tags": 12})
			}))
			defer server.Close()

			srv, _ := NewFluentService(testConfig(server.URL), nil)
			_, err := srv.Tags(context.Background())
			if !errors.Is(err, shared.ErrUnexpectedFormat) {
				t.Errorf("expected ErrUnexpectedFormat, got %v", err)
			}
		})
	})

	t.Run("Lists", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasSuffix(r.URL.Path, "/lists") {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]any{"lists": []map[string]any{
				{"id": 9, "title": "Newsletter", "slug": "newsletter"},
			}})
		}))
		defer server.Close()

		srv, _ := NewFluentService(testConfig(server.URL), nil)
		lists, err := srv.Lists(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(lists) != 1 || lists[0].Title != "Newsletter" {
			t.Errorf("unexpected lists %v", lists)
		}
	})

	t.Run("UpdateList", func(t *testing.T) {
		t.Run("Requires Title Or Slug", func(t *testing.T) {
			srv, _ := NewFluentService(testConfig("https://example.com"), nil)
			_, err := srv.UpdateList(context.Background(), 3, "", "")
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})

		t.Run("Sends Only Provided Fields", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				var payload map[string]string
				json.Unmarshal(body, &payload)
				if payload["title"] != "Weekly" {
					t.Errorf("expected title Weekly, got %v", payload)
				}
				if _, ok := payload["slug"]; ok {
					t.Error("empty slug should be omitted")
				}
				json.NewEncoder(w).Encode(map[string]any{"message": "updated"})
			}))
			defer server.Close()

			srv, _ := NewFluentService(testConfig(server.URL), nil)
			if _, err := srv.UpdateList(context.Background(), 3, "Weekly", ""); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	})

	t.Run("StatusError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"message":"The given tag id does not exist"}`))
		}))
		defer server.Close()

		srv, _ := NewFluentService(testConfig(server.URL), nil)
		_, err := srv.DeleteTag(context.Background(), 999)
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected error to unwrap to ErrAPIRequest, got %v", err)
		}

		var se *StatusError
		if !errors.As(err, &se) {
			t.Fatalf("expected StatusError, got %T", err)
		}
		if se.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("expected status 422, got %d", se.StatusCode)
		}
		if !strings.Contains(string(se.Body), "does not exist") {
			t.Errorf("expected body preserved, got %s", se.Body)
		}
		if !strings.Contains(err.Error(), "does not exist") {
			t.Errorf("expected body surfaced in message, got %v", err)
		}
	})

	t.Run("Canceled Context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		srv, _ := NewFluentService(testConfig(server.URL), nil)
		if _, err := srv.Tags(ctx); err == nil {
			t.Error("expected error for canceled context")
		}
	})
}

func ExampleStatusError() {
	err := &StatusError{StatusCode: 404, Body: []byte(`{"message":"not found"}`)}
	fmt.Println(err)
	// Output: status 404, body: {"message":"not found"}
}
