package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/xeipuuv/gojsonschema"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/internal/models"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/internal/services"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/pkg/metrics"
)

const maxBodyBytes = 64 << 10

const syncRequestSchema = `{
  "type": "object",
  "required": ["status_type", "subscription"],
  "properties": {
    "status_type": {"type": "string", "enum": ["subscribe", "unsubscribe"]},
    "subscription": {
      "type": "object",
      "required": ["endpoint"],
      "properties": {
        "endpoint": {"type": "string", "minLength": 1},
        "expirationTime": {"type": ["integer", "null"]},
        "keys": {"type": "object", "additionalProperties": {"type": "string"}}
      }
    },
    "browser": {"type": "string"},
    "group": {"type": "string"}
  }
}`

var syncSchemaLoader = gojsonschema.NewStringLoader(syncRequestSchema)

// Registry is the part of services.Registry the handlers call.
type Registry interface {
	Register(ctx context.Context, req models.SyncRequest) error
	Unregister(ctx context.Context, req models.SyncRequest) (bool, error)
	GroupSize(ctx context.Context, group string) (int64, error)
}

type SubscriptionHandler struct {
	registry Registry
	metrics  *metrics.Metrics
}

func NewSubscriptionHandler(registry Registry, metrics *metrics.Metrics) *SubscriptionHandler {
	return &SubscriptionHandler{registry: registry, metrics: metrics}
}

// Sync answers 201 for a stored subscription and 202 for a removed one.
// Removing an unknown subscription also answers 202.
func (h *SubscriptionHandler) Sync(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		h.reject(w, "unreadable_body", "could not read request body")
		return
	}
	if len(body) > maxBodyBytes {
		h.reject(w, "body_too_large", "request body too large")
		return
	}

	result, err := gojsonschema.Validate(syncSchemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		h.reject(w, "invalid_json", "request body is not valid JSON")
		return
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		h.reject(w, "schema", strings.Join(msgs, "; "))
		return
	}

	var req models.SyncRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.reject(w, "invalid_json", err.Error())
		return
	}

	switch req.StatusType {
	case models.StatusSubscribe:
		if err := h.registry.Register(r.Context(), req); err != nil {
			h.fail(w, err)
			return
		}
		respondWithJSON(w, http.StatusCreated, envelope{Success: true, Message: "subscription stored"})
	case models.StatusUnsubscribe:
		existed, err := h.registry.Unregister(r.Context(), req)
		if err != nil {
			h.fail(w, err)
			return
		}
		msg := "subscription removed"
		if !existed {
			msg = "subscription not found"
		}
		respondWithJSON(w, http.StatusAccepted, envelope{Success: true, Message: msg})
	default:
		h.reject(w, "status_type", "unknown status_type")
	}
}

// GroupSize reports how many subscriptions a group holds.
func (h *SubscriptionHandler) GroupSize(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "group")
	count, err := h.registry.GroupSize(r.Context(), group)
	if err != nil {
		respondWithJSON(w, http.StatusInternalServerError, envelope{Success: false, Message: "count failed"})
		return
	}
	respondWithJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "ok",
		Data:    map[string]interface{}{"group": group, "subscriptions": count},
	})
}

func (h *SubscriptionHandler) reject(w http.ResponseWriter, reason, msg string) {
	h.metrics.IncRejected(reason)
	respondWithJSON(w, http.StatusBadRequest, envelope{Success: false, Message: msg})
}

func (h *SubscriptionHandler) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrInvalidRequest) {
		h.reject(w, "incomplete_subscription", err.Error())
		return
	}
	respondWithJSON(w, http.StatusInternalServerError, envelope{Success: false, Message: "storage failure"})
}

type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
