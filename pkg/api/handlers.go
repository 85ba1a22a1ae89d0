package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	icommon "github.com/goran-ethernal/NomadIndexer/internal/common"
	"github.com/goran-ethernal/NomadIndexer/internal/logger"
	"github.com/goran-ethernal/NomadIndexer/internal/message"
	"github.com/goran-ethernal/NomadIndexer/internal/orchestrator"
	"github.com/goran-ethernal/NomadIndexer/pkg/store"
)

const maxPageSize = 100

// StatusProvider reports the indexing status of every domain.
type StatusProvider interface {
	Status(ctx context.Context) (map[uint32]orchestrator.DomainStatus, error)
}

// Handler handles HTTP requests for the API.
type Handler struct {
	messages store.MessageStore
	status   StatusProvider
	log      *logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(messages store.MessageStore, status StatusProvider, log *logger.Logger) *Handler {
	return &Handler{
		messages: messages,
		status:   status,
		log:      log,
	}
}

// GetMessage returns one message by its hash.
// @Summary Get a message
// @Description Get a message by its message hash
// @Tags Messages
// @Produce json
// @Param hash path string true "Message hash"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse "Invalid hash"
// @Failure 404 {object} ErrorResponse "Message not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /messages/{hash} [get]
func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	hash, err := parseHash(r.PathValue("hash"))
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid message hash: %v", err))
		return
	}

	m, err := h.messages.GetByHash(r.Context(), hash)
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, fmt.Sprintf("message %s not found", hash.Hex()))
		return
	}
	if err != nil {
		h.log.Errorf("failed to get message %s: %v", hash.Hex(), err)
		respondError(w, http.StatusInternalServerError, "failed to get message")
		return
	}

	respondJSON(w, http.StatusOK, toMessageResponse(m))
}

// GetMessagesByTx returns the messages sent in a transaction.
// @Summary Get messages of a transaction
// @Description Get the messages whose bridge send happened in the transaction
// @Tags Messages
// @Produce json
// @Param tx path string true "Transaction hash"
// @Success 200 {array} MessageResponse
// @Failure 400 {object} ErrorResponse "Invalid hash"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /tx/{tx} [get]
func (h *Handler) GetMessagesByTx(w http.ResponseWriter, r *http.Request) {
	tx, err := parseHash(r.PathValue("tx"))
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid transaction hash: %v", err))
		return
	}

	msgs, err := h.messages.GetByTx(r.Context(), tx)
	if err != nil {
		h.log.Errorf("failed to get messages of tx %s: %v", tx.Hex(), err)
		respondError(w, http.StatusInternalServerError, "failed to get messages")
		return
	}

	respondJSON(w, http.StatusOK, toMessageResponses(msgs))
}

// ListMessages returns a filtered page of messages.
// @Summary List messages
// @Description List messages, newest dispatch first, with optional filters and pagination
// @Tags Messages
// @Produce json
// @Param origin query integer false "Origin domain"
// @Param destination query integer false "Destination domain"
// @Param sender query string false "Account that sent the transfer"
// @Param recipient query string false "Transfer recipient"
// @Param state query string false "Message state" Enums(dispatched, updated, relayed, received, processed)
// @Param page query int false "Page, starting at 1" default(1)
// @Param size query int false "Page size" default(15)
// @Success 200 {object} MessagesResponse
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /messages [get]
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMessageFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid query parameters: %v", err))
		return
	}

	msgs, err := h.messages.GetMany(r.Context(), filter)
	if err != nil {
		h.log.Errorf("failed to list messages: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}

	total, err := h.messages.Count(r.Context(), filter)
	if err != nil {
		h.log.Errorf("failed to count messages: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to count messages")
		return
	}

	respondJSON(w, http.StatusOK, MessagesResponse{
		Messages: toMessageResponses(msgs),
		Pagination: PaginationResult{
			Page:    filter.Page,
			Size:    filter.Size,
			Total:   total,
			HasMore: filter.Page*filter.Size < total,
		},
	})
}

// CountMessages returns the number of messages sent from a domain.
// @Summary Count messages of a domain
// @Tags Messages
// @Produce json
// @Param domain path integer true "Origin domain"
// @Success 200 {object} CountResponse
// @Failure 400 {object} ErrorResponse "Invalid domain"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /domains/{domain}/count [get]
func (h *Handler) CountMessages(w http.ResponseWriter, r *http.Request) {
	domain, err := icommon.ParseDomainID(r.PathValue("domain"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	count, err := h.messages.Count(r.Context(), store.MessageFilter{Origin: &domain})
	if err != nil {
		h.log.Errorf("failed to count messages of domain %d: %v", domain, err)
		respondError(w, http.StatusInternalServerError, "failed to count messages")
		return
	}

	respondJSON(w, http.StatusOK, CountResponse{Domain: domain, Count: count})
}

// Status returns the indexing status of every domain.
// @Summary Indexing status
// @Tags Status
// @Produce json
// @Success 200 {array} DomainStatus
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /status [get]
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.domainStatuses(r.Context())
	if err != nil {
		h.log.Errorf("failed to get status: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to get status")
		return
	}

	respondJSON(w, http.StatusOK, statuses)
}

// Health reports whether the indexer can serve its status.
// A domain with RPC failures in the window marks the indexer as degraded.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.domainStatuses(r.Context())
	if err != nil {
		h.log.Warnf("health check failed: %v", err)
		respondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Timestamp: time.Now()})
		return
	}

	status := "ok"
	for _, s := range statuses {
		if s.RPCFailureCountInWindow > 0 {
			status = "degraded"
			break
		}
	}

	respondJSON(w, http.StatusOK, HealthResponse{Status: status, Timestamp: time.Now(), Domains: statuses})
}

func (h *Handler) domainStatuses(ctx context.Context) ([]DomainStatus, error) {
	byDomain, err := h.status.Status(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]DomainStatus, 0, len(byDomain))
	for domain, s := range byDomain {
		statuses = append(statuses, DomainStatus{
			Domain:                  domain,
			LastIndexedBlock:        s.LastIndexedBlock,
			MessageCount:            s.MessageCount,
			RPCFailureCountInWindow: s.RPCFailureCountInWindow,
		})
	}
	slices.SortFunc(statuses, func(a, b DomainStatus) int { return int(a.Domain) - int(b.Domain) })

	return statuses, nil
}

func parseHash(s string) (common.Hash, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return common.Hash{}, err
	}
	if len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("expected %d bytes, got %d", common.HashLength, len(b))
	}
	return common.BytesToHash(b), nil
}

// parseMessageFilter parses the query parameters of ListMessages.
func parseMessageFilter(r *http.Request) (store.MessageFilter, error) {
	q := r.URL.Query()
	filter := store.MessageFilter{Page: 1, Size: store.DefaultPageSize}

	if v := q.Get("origin"); v != "" {
		origin, err := icommon.ParseDomainID(v)
		if err != nil {
			return filter, fmt.Errorf("origin: %w", err)
		}
		filter.Origin = &origin
	}

	if v := q.Get("destination"); v != "" {
		destination, err := icommon.ParseDomainID(v)
		if err != nil {
			return filter, fmt.Errorf("destination: %w", err)
		}
		filter.Destination = &destination
	}

	if v := q.Get("sender"); v != "" {
		if !common.IsHexAddress(v) {
			return filter, fmt.Errorf("invalid sender address")
		}
		sender := common.HexToAddress(v)
		filter.Sender = &sender
	}

	// recipients are stored padded to 32 bytes, plain addresses are padded the same way
	if v := q.Get("recipient"); v != "" {
		var recipient common.Hash
		switch {
		case common.IsHexAddress(v):
			recipient = common.BytesToHash(common.HexToAddress(v).Bytes())
		default:
			h, err := parseHash(v)
			if err != nil {
				return filter, fmt.Errorf("invalid recipient: %w", err)
			}
			recipient = h
		}
		filter.Recipient = &recipient
	}

	if v := q.Get("state"); v != "" {
		state, err := message.ParseState(v)
		if err != nil {
			return filter, err
		}
		filter.State = &state
	}

	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 1 {
			return filter, fmt.Errorf("invalid page: must be a positive number")
		}
		filter.Page = page
	}

	if v := q.Get("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 || size > maxPageSize {
			return filter, fmt.Errorf("invalid size: must be between 1 and %d", maxPageSize)
		}
		filter.Size = size
	}

	return filter, nil
}

func toMessageResponse(m *message.NomadMessage) MessageResponse {
	resp := MessageResponse{
		MessageHash:       m.MessageHash.Hex(),
		Origin:            m.Origin,
		Destination:       m.Destination,
		Nonce:             m.Nonce,
		Root:              m.Root.Hex(),
		Body:              hexutil.Encode(m.Body),
		DispatchBlock:     m.DispatchBlock,
		InternalSender:    m.InternalSender.Hex(),
		InternalRecipient: m.InternalRecipient.Hex(),
		Transfer:          m.Transfer,
		State:             m.State.String(),
		Timings:           m.Timings,
		GasUsed:           m.GasUsed,
		Checkbox:          m.Checkbox,
		Success:           m.Success,
	}
	if m.LeafIndex != nil {
		resp.LeafIndex = m.LeafIndex.String()
	}
	if m.Sender != nil {
		sender := m.Sender.Hex()
		resp.Sender = &sender
	}
	if m.Tx != nil {
		tx := m.Tx.Hex()
		resp.Tx = &tx
	}
	if len(m.ReturnData) > 0 {
		resp.ReturnData = hexutil.Encode(m.ReturnData)
	}
	return resp
}

func toMessageResponses(msgs []*message.NomadMessage) []MessageResponse {
	out := make([]MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// encode first so a failure can still change the status
	encoded, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	_, _ = w.Write(encoded)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: msg,
		Code:    status,
	})
}
