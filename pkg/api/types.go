package api

import (
	"time"

	"github.com/goran-ethernal/NomadIndexer/internal/message"
)

// MessageResponse is the API view of a message.
type MessageResponse struct {
	MessageHash   string `json:"messageHash"`
	Origin        uint32 `json:"origin"`
	Destination   uint32 `json:"destination"`
	Nonce         uint32 `json:"nonce"`
	Root          string `json:"root"`
	LeafIndex     string `json:"leafIndex,omitempty"`
	Body          string `json:"body"`
	DispatchBlock uint64 `json:"dispatchBlock"`

	Sender            *string `json:"sender,omitempty"`
	Tx                *string `json:"tx,omitempty"`
	InternalSender    string  `json:"internalSender"`
	InternalRecipient string  `json:"internalRecipient"`

	Transfer *message.Transfer `json:"transfer,omitempty"`

	State    string           `json:"state"`
	Timings  message.Timings  `json:"timings"`
	GasUsed  message.GasUsed  `json:"gasUsed"`
	Checkbox message.Checkbox `json:"checkbox"`

	Success    *bool  `json:"success,omitempty"`
	ReturnData string `json:"returnData,omitempty"`
}

// MessagesResponse is a page of messages.
type MessagesResponse struct {
	Messages   []MessageResponse `json:"messages"`
	Pagination PaginationResult  `json:"pagination"`
}

// PaginationResult contains pagination metadata.
type PaginationResult struct {
	Page    int  `json:"page"`
	Size    int  `json:"size"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

// CountResponse is the number of messages sent from a domain.
type CountResponse struct {
	Domain uint32 `json:"domain"`
	Count  int    `json:"count"`
}

// DomainStatus is the indexing status of one domain.
type DomainStatus struct {
	Domain                  uint32 `json:"domain"`
	LastIndexedBlock        uint64 `json:"lastIndexedBlock"`
	MessageCount            int    `json:"messageCount"`
	RPCFailureCountInWindow int    `json:"rpcFailureCountInWindow"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Domains   []DomainStatus `json:"domains"`
}
