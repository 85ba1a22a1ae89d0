package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/goran-ethernal/NomadIndexer/internal/event"
)

// StoreEvents appends events to the raw event log. Events already stored are skipped.
func (s *SQLStore) StoreEvents(ctx context.Context, events []*event.NomadEvent) (err error) {
	if len(events) == 0 {
		return nil
	}
	defer s.observe("store_events", time.Now(), &err)

	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, ev := range events {
			row, err := toDBEvent(ev)
			if err != nil {
				return err
			}
			if _, err := s.insertIgnore(ctx, tx, eventsTable, row); err != nil {
				return fmt.Errorf("failed to store %s: %w", ev, err)
			}
		}
		return nil
	})
}

// AllEvents returns the stored events of a domain in processing order.
func (s *SQLStore) AllEvents(ctx context.Context, domain uint32) (events []*event.NomadEvent, err error) {
	defer s.observe("all_events", time.Now(), &err)

	var rows []*dbEvent
	const query = "SELECT * FROM events WHERE domain = ? ORDER BY ts ASC, block ASC, log_index ASC"
	if err := s.dialect.Meddler.QueryAll(s.db, &rows, s.dialect.Rebind(query), domain); err != nil {
		return nil, fmt.Errorf("failed to query events of domain %d: %w", domain, err)
	}

	events = make([]*event.NomadEvent, 0, len(rows))
	for _, r := range rows {
		var o event.Object
		if err := json.Unmarshal([]byte(r.Object), &o); err != nil {
			return nil, fmt.Errorf("stored event %s is malformed: %w", r.Hash.Hex(), err)
		}
		ev, err := event.FromObject(o)
		if err != nil {
			return nil, fmt.Errorf("stored event %s is malformed: %w", r.Hash.Hex(), err)
		}
		events = append(events, ev)
	}

	event.Sort(events)
	return events, nil
}

func toDBEvent(ev *event.NomadEvent) (*dbEvent, error) {
	o, err := ev.ToObject()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", ev, err)
	}

	return &dbEvent{
		Hash:      ev.UniqueHash(),
		Domain:    ev.Domain,
		EventType: string(ev.EventType),
		Block:     ev.Block,
		LogIndex:  ev.LogIndex,
		TS:        ev.TS,
		Object:    string(raw),
	}, nil
}
