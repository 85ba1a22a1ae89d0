package api

import (
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/NomadIndexer/internal/logger"
	"github.com/goran-ethernal/NomadIndexer/internal/message"
	"github.com/goran-ethernal/NomadIndexer/internal/orchestrator"
	storemocks "github.com/goran-ethernal/NomadIndexer/internal/store/mocks"
	apimocks "github.com/goran-ethernal/NomadIndexer/pkg/api/mocks"
	"github.com/goran-ethernal/NomadIndexer/pkg/store"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testHash = common.HexToHash("0x5f1a")

func testServer(t *testing.T) (http.Handler, *storemocks.Store, *apimocks.StatusProvider) {
	t.Helper()

	s := storemocks.NewStore(t)
	status := apimocks.NewStatusProvider(t)
	srv := NewServer(testAPIConfig(":0"), s, status, logger.NewNopLogger())
	return srv.Handler(), s, status
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func storedMessage() *message.NomadMessage {
	sender := common.HexToAddress("0xf00")
	success := true
	return &message.NomadMessage{
		Origin:      1000,
		Destination: 2000,
		Nonce:       7,
		MessageHash: testHash,
		LeafIndex:   big.NewInt(3),
		Body:        []byte{0xca, 0xfe},
		Sender:      &sender,
		State:       message.Processed,
		Timings:     message.Timings{DispatchedAt: 1, ProcessedAt: 9},
		Success:     &success,
	}
}

func TestRespondJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		status       int
		data         any
		expectedBody string
	}{
		{name: "object", status: http.StatusOK, data: map[string]string{"message": "success"}, expectedBody: `{"message":"success"}`},
		{name: "array", status: http.StatusOK, data: []string{"a", "b"}, expectedBody: `["a","b"]`},
		{name: "nil", status: http.StatusOK, data: nil, expectedBody: "null"},
		{name: "error status", status: http.StatusBadRequest, data: map[string]string{"error": "bad"}, expectedBody: `{"error":"bad"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			respondJSON(w, tt.status, tt.data)

			require.Equal(t, tt.status, w.Code)
			require.Equal(t, "application/json", w.Header().Get("Content-Type"))
			require.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}

	t.Run("unencodable data", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		respondJSON(w, http.StatusOK, make(chan int))
		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandler_GetMessage(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		h, s, _ := testServer(t)
		s.EXPECT().GetByHash(mock.Anything, testHash).Return(storedMessage(), nil).Once()

		w := get(t, h, "/api/v1/messages/"+testHash.Hex())
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[MessageResponse](t, w)
		require.Equal(t, testHash.Hex(), resp.MessageHash)
		require.Equal(t, "processed", resp.State)
		require.Equal(t, "0xcafe", resp.Body)
		require.Equal(t, "3", resp.LeafIndex)
		require.Equal(t, common.HexToAddress("0xf00").Hex(), *resp.Sender)
		require.Nil(t, resp.Tx)
		require.True(t, *resp.Success)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		h, s, _ := testServer(t)
		s.EXPECT().GetByHash(mock.Anything, testHash).Return(nil, store.ErrNotFound).Once()

		w := get(t, h, "/api/v1/messages/"+testHash.Hex())
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Equal(t, http.StatusNotFound, decode[ErrorResponse](t, w).Code)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()

		h, s, _ := testServer(t)
		s.EXPECT().GetByHash(mock.Anything, testHash).Return(nil, errors.New("disk I/O error")).Once()

		w := get(t, h, "/api/v1/messages/"+testHash.Hex())
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.NotContains(t, w.Body.String(), "disk")
	})

	t.Run("invalid hash", func(t *testing.T) {
		t.Parallel()

		h, _, _ := testServer(t)
		for _, bad := range []string{"0x1234", "nothex", "0x" + common.Bytes2Hex(make([]byte, 33))} {
			require.Equal(t, http.StatusBadRequest, get(t, h, "/api/v1/messages/"+bad).Code, bad)
		}
	})
}

func TestHandler_GetMessagesByTx(t *testing.T) {
	t.Parallel()

	h, s, _ := testServer(t)
	tx := common.HexToHash("0x77")
	s.EXPECT().GetByTx(mock.Anything, tx).Return([]*message.NomadMessage{storedMessage()}, nil).Once()

	w := get(t, h, "/api/v1/tx/"+tx.Hex())
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode[[]MessageResponse](t, w), 1)
}

func TestParseMessageFilter(t *testing.T) {
	t.Parallel()

	u32 := func(v uint32) *uint32 { return &v }
	addr := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	padded := common.BytesToHash(addr.Bytes())
	processed := message.Processed

	tests := []struct {
		name    string
		query   string
		want    store.MessageFilter
		wantErr string
	}{
		{
			name:  "defaults",
			query: "",
			want:  store.MessageFilter{Page: 1, Size: store.DefaultPageSize},
		},
		{
			name:  "domains and paging",
			query: "origin=1000&destination=0x7d0&page=3&size=50",
			want:  store.MessageFilter{Origin: u32(1000), Destination: u32(2000), Page: 3, Size: 50},
		},
		{
			name:  "address recipient is padded",
			query: "recipient=" + addr.Hex() + "&sender=" + addr.Hex() + "&state=processed",
			want: store.MessageFilter{Sender: &addr, Recipient: &padded, State: &processed,
				Page: 1, Size: store.DefaultPageSize},
		},
		{
			name:  "hash recipient",
			query: "recipient=" + padded.Hex(),
			want:  store.MessageFilter{Recipient: &padded, Page: 1, Size: store.DefaultPageSize},
		},
		{name: "bad origin", query: "origin=abc", wantErr: "origin"},
		{name: "bad sender", query: "sender=0x12", wantErr: "sender"},
		{name: "bad state", query: "state=lost", wantErr: "state"},
		{name: "zero page", query: "page=0", wantErr: "page"},
		{name: "size too large", query: "size=101", wantErr: "size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseMessageFilter(httptest.NewRequest(http.MethodGet, "/api/v1/messages?"+tt.query, nil))
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestHandler_ListMessages(t *testing.T) {
	t.Parallel()

	h, s, _ := testServer(t)
	matchPage := mock.MatchedBy(func(f store.MessageFilter) bool {
		return f.Page == 2 && f.Size == 1 && f.Origin != nil && *f.Origin == 1000
	})
	s.EXPECT().GetMany(mock.Anything, matchPage).Return([]*message.NomadMessage{storedMessage()}, nil).Once()
	s.EXPECT().Count(mock.Anything, matchPage).Return(3, nil).Once()

	w := get(t, h, "/api/v1/messages?origin=1000&page=2&size=1")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[MessagesResponse](t, w)
	require.Len(t, resp.Messages, 1)
	require.Equal(t, PaginationResult{Page: 2, Size: 1, Total: 3, HasMore: true}, resp.Pagination)

	require.Equal(t, http.StatusBadRequest, get(t, h, "/api/v1/messages?size=-1").Code)
}

func TestHandler_CountMessages(t *testing.T) {
	t.Parallel()

	h, s, _ := testServer(t)
	s.EXPECT().Count(mock.Anything, mock.MatchedBy(func(f store.MessageFilter) bool {
		return f.Origin != nil && *f.Origin == 6648936
	})).Return(12, nil).Once()

	w := get(t, h, "/api/v1/domains/6648936/count")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, CountResponse{Domain: 6648936, Count: 12}, decode[CountResponse](t, w))

	require.Equal(t, http.StatusBadRequest, get(t, h, "/api/v1/domains/ethereum/count").Code)
}

func TestHandler_StatusAndHealth(t *testing.T) {
	t.Parallel()

	t.Run("sorted by domain", func(t *testing.T) {
		t.Parallel()

		h, _, status := testServer(t)
		status.EXPECT().Status(mock.Anything).Return(map[uint32]orchestrator.DomainStatus{
			2000: {LastIndexedBlock: 20, MessageCount: 1},
			1000: {LastIndexedBlock: 10, MessageCount: 4},
		}, nil).Once()

		w := get(t, h, "/api/v1/status")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, []DomainStatus{
			{Domain: 1000, LastIndexedBlock: 10, MessageCount: 4},
			{Domain: 2000, LastIndexedBlock: 20, MessageCount: 1},
		}, decode[[]DomainStatus](t, w))
	})

	tests := []struct {
		name       string
		status     map[uint32]orchestrator.DomainStatus
		err        error
		wantCode   int
		wantStatus string
	}{
		{
			name:       "healthy",
			status:     map[uint32]orchestrator.DomainStatus{1000: {}},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
		},
		{
			name:       "rpc failures degrade",
			status:     map[uint32]orchestrator.DomainStatus{1000: {}, 2000: {RPCFailureCountInWindow: 3}},
			wantCode:   http.StatusOK,
			wantStatus: "degraded",
		},
		{
			name:       "store unavailable",
			err:        errors.New("connection refused"),
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, _, status := testServer(t)
			status.EXPECT().Status(mock.Anything).Return(tt.status, tt.err).Once()

			w := get(t, h, "/health")
			require.Equal(t, tt.wantCode, w.Code)
			require.Equal(t, tt.wantStatus, decode[HealthResponse](t, w).Status)
		})
	}
}
