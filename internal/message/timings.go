package message

// Timings holds stage timestamps in unix milliseconds. Zero means the stage was not observed.
type Timings struct {
	DispatchedAt int64 `json:"dispatchedAt"`
	UpdatedAt    int64 `json:"updatedAt"`
	RelayedAt    int64 `json:"relayedAt"`
	ReceivedAt   int64 `json:"receivedAt"`
	ProcessedAt  int64 `json:"processedAt"`
}

func (t *Timings) slots() [5]*int64 {
	return [5]*int64{&t.DispatchedAt, &t.UpdatedAt, &t.RelayedAt, &t.ReceivedAt, &t.ProcessedAt}
}

// set stores ts for the stage at index i, clamped between the latest
// earlier stage and the earliest later stage that are present.
func (t *Timings) set(i int, ts int64) {
	s := t.slots()

	var lower int64
	for j := 0; j < i; j++ {
		if *s[j] > lower {
			lower = *s[j]
		}
	}
	var upper int64
	for j := len(s) - 1; j > i; j-- {
		if *s[j] != 0 {
			upper = *s[j]
		}
	}

	if upper != 0 && ts > upper && upper >= lower {
		ts = upper
	}
	if ts < lower {
		ts = lower
	}
	*s[i] = ts
}

func (t *Timings) Updated(ts int64)   { t.set(int(Updated), ts) }
func (t *Timings) Relayed(ts int64)   { t.set(int(Relayed), ts) }
func (t *Timings) Received(ts int64)  { t.set(int(Received), ts) }
func (t *Timings) Processed(ts int64) { t.set(int(Processed), ts) }

// At returns the timestamp of a stage.
func (t Timings) At(s State) int64 {
	if s < Dispatched || s > Processed {
		return 0
	}
	return *t.slots()[s]
}

func firstNonZero(vals ...int64) int64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

// ToUpdate is the time from dispatch to update.
func (t Timings) ToUpdate() (int64, bool) {
	if t.UpdatedAt == 0 {
		return 0, false
	}
	return t.UpdatedAt - t.DispatchedAt, true
}

// ToRelay is measured from the last stage observed before the relay.
func (t Timings) ToRelay() (int64, bool) {
	if t.RelayedAt == 0 {
		return 0, false
	}
	return t.RelayedAt - firstNonZero(t.UpdatedAt, t.DispatchedAt), true
}

// ToReceive is measured from the last stage observed before the receive.
func (t Timings) ToReceive() (int64, bool) {
	if t.ReceivedAt == 0 {
		return 0, false
	}
	return t.ReceivedAt - firstNonZero(t.RelayedAt, t.UpdatedAt, t.DispatchedAt), true
}

// ToProcess ignores the receive stage, which happens on the same chain in the same transaction.
func (t Timings) ToProcess() (int64, bool) {
	if t.ProcessedAt == 0 {
		return 0, false
	}
	return t.ProcessedAt - firstNonZero(t.RelayedAt, t.UpdatedAt, t.DispatchedAt), true
}

// GasUsed records the gas spent by the transaction of every stage.
type GasUsed struct {
	Dispatch uint64 `json:"gasAtDispatch"`
	Update   uint64 `json:"gasAtUpdate"`
	Relay    uint64 `json:"gasAtRelay"`
	Receive  uint64 `json:"gasAtReceive"`
	Process  uint64 `json:"gasAtProcess"`
}

// Checkbox tracks which stage events were applied, independently of State.
type Checkbox struct {
	Sent      bool `json:"sent"`
	Updated   bool `json:"updated"`
	Relayed   bool `json:"relayed"`
	Received  bool `json:"received"`
	Processed bool `json:"processed"`
}
