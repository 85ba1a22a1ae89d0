package poller

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/NomadIndexer/internal/event"
	"github.com/goran-ethernal/NomadIndexer/pkg/config"
)

// Stream is one event type emitted by one contract of a domain.
type Stream struct {
	Contract      common.Address
	EventType     event.EventType
	ReplicaOrigin uint32
}

// Key is the checkpoint key of the stream: <domain>:<eventType>[:<replicaOrigin>].
func (s Stream) Key(domain uint32) string {
	if s.EventType.ContractType() == event.ContractReplica {
		return fmt.Sprintf("%d:%s:%d", domain, s.EventType, s.ReplicaOrigin)
	}
	return fmt.Sprintf("%d:%s", domain, s.EventType)
}

// StreamsOf lists the streams polled on a domain.
func StreamsOf(d config.DomainConfig) []Stream {
	home := common.HexToAddress(d.Home)
	streams := []Stream{
		{Contract: home, EventType: event.HomeDispatch},
		{Contract: home, EventType: event.HomeUpdate},
	}

	for _, r := range d.Replicas {
		replica := common.HexToAddress(r.Address)
		streams = append(streams,
			Stream{Contract: replica, EventType: event.ReplicaUpdate, ReplicaOrigin: r.Origin},
			Stream{Contract: replica, EventType: event.ReplicaProcess, ReplicaOrigin: r.Origin},
		)
	}

	if d.BridgeRouter != "" {
		router := common.HexToAddress(d.BridgeRouter)
		streams = append(streams,
			Stream{Contract: router, EventType: event.BridgeSend},
			Stream{Contract: router, EventType: event.BridgeReceive},
		)
	}

	return streams
}
