package models

import "encoding/json"

type Position string

const (
	QB  Position = "QB"
	RB  Position = "RB"
	WR  Position = "WR"
	TE  Position = "TE"
	K   Position = "K"
	DEF Position = "DEF"
)

// Positions is the column order of every roster row.
var Positions = []Position{QB, RB, WR, TE, K, DEF}

// ParsePosition reports whether pos is one of the bucketed positions.
func ParsePosition(pos string) (Position, bool) {
	for _, p := range Positions {
		if string(p) == pos {
			return p, true
		}
	}
	return "", false
}

// RosterRow is shared by every aggregation regime.
type RosterRow interface {
	TeamName() string
	Total() float64
	Bucket(pos Position) float64
}

// PositionTotals holds one number per bucketed position.
type PositionTotals struct {
	QB  float64 `json:"QB"`
	RB  float64 `json:"RB"`
	WR  float64 `json:"WR"`
	TE  float64 `json:"TE"`
	K   float64 `json:"K"`
	DEF float64 `json:"DEF"`
}

func (p *PositionTotals) Add(pos Position, v float64) {
	switch pos {
	case QB:
		p.QB += v
	case RB:
		p.RB += v
	case WR:
		p.WR += v
	case TE:
		p.TE += v
	case K:
		p.K += v
	case DEF:
		p.DEF += v
	}
}

func (p PositionTotals) Get(pos Position) float64 {
	switch pos {
	case QB:
		return p.QB
	case RB:
		return p.RB
	case WR:
		return p.WR
	case TE:
		return p.TE
	case K:
		return p.K
	case DEF:
		return p.DEF
	}
	return 0
}

func (p PositionTotals) Sum() float64 {
	var total float64
	for _, pos := range Positions {
		total += p.Get(pos)
	}
	return total
}

// ProjectedRosterRow is a future or unplayed week built from the projection feed.
type ProjectedRosterRow struct {
	Team   string `json:"Team"`
	Avatar string `json:"Avatar"`
	PositionTotals
	TotalPoints float64           `json:"Total"`
	Lineup      map[string]string `json:"Lineup,omitempty"`
}

func (r ProjectedRosterRow) TeamName() string            { return r.Team }
func (r ProjectedRosterRow) Total() float64              { return r.TotalPoints }
func (r ProjectedRosterRow) Bucket(pos Position) float64 { return r.Get(pos) }

type BucketStatus string

const (
	BucketProjected BucketStatus = "projected"
	BucketActive    BucketStatus = "active"
)

// LiveBucket carries both sub-totals of a position during live play.
// Blended counts reported points for players who played and projections
// for everyone else.
type LiveBucket struct {
	Projected float64      `json:"projected"`
	Live      float64      `json:"live"`
	Blended   float64      `json:"blended"`
	Status    BucketStatus `json:"status"`
}

type LiveBuckets struct {
	QB  LiveBucket `json:"QB"`
	RB  LiveBucket `json:"RB"`
	WR  LiveBucket `json:"WR"`
	TE  LiveBucket `json:"TE"`
	K   LiveBucket `json:"K"`
	DEF LiveBucket `json:"DEF"`
}

func (b *LiveBuckets) ptr(pos Position) *LiveBucket {
	switch pos {
	case QB:
		return &b.QB
	case RB:
		return &b.RB
	case WR:
		return &b.WR
	case TE:
		return &b.TE
	case K:
		return &b.K
	case DEF:
		return &b.DEF
	}
	return nil
}

// Record adds one starter to its bucket. reported is true once the player
// has points on the board.
func (b *LiveBuckets) Record(pos Position, projected, live float64, reported bool) {
	bucket := b.ptr(pos)
	if bucket == nil {
		return
	}
	bucket.Projected += projected
	if reported {
		bucket.Live += live
		bucket.Blended += live
		bucket.Status = BucketActive
	} else {
		bucket.Blended += projected
		if bucket.Status == "" {
			bucket.Status = BucketProjected
		}
	}
}

// Settle marks buckets that never saw a starter as projected.
func (b *LiveBuckets) Settle() {
	for _, pos := range Positions {
		if bucket := b.ptr(pos); bucket.Status == "" {
			bucket.Status = BucketProjected
		}
	}
}

func (b LiveBuckets) Get(pos Position) LiveBucket {
	if bucket := b.ptr(pos); bucket != nil {
		return *bucket
	}
	return LiveBucket{}
}

// LiveRosterRow is an in-progress week. It serializes the blended value of
// each position under the position name, like the other row types, and the
// full bucket detail under "Buckets".
type LiveRosterRow struct {
	Team           string `json:"Team"`
	Avatar         string `json:"Avatar"`
	LiveBuckets    `json:"Buckets"`
	TotalPoints    float64           `json:"Total"`
	ProjectedTotal float64           `json:"ProjectedTotal"`
	LiveTotal      float64           `json:"LiveTotal"`
	Lineup         map[string]string `json:"Lineup,omitempty"`
}

func (r LiveRosterRow) TeamName() string            { return r.Team }
func (r LiveRosterRow) Total() float64              { return r.TotalPoints }
func (r LiveRosterRow) Bucket(pos Position) float64 { return r.Get(pos).Blended }

func (r LiveRosterRow) MarshalJSON() ([]byte, error) {
	type row LiveRosterRow
	var blended PositionTotals
	for _, pos := range Positions {
		blended.Add(pos, r.Get(pos).Blended)
	}
	return json.Marshal(struct {
		row
		PositionTotals
	}{row(r), blended})
}

// HistoricalAverageRosterRow averages a completed season per position.
type HistoricalAverageRosterRow struct {
	Team   string `json:"Team"`
	Avatar string `json:"Avatar"`
	PositionTotals
	TotalPoints  float64 `json:"Total"`
	WeeksCounted int     `json:"Weeks"`
}

func (r HistoricalAverageRosterRow) TeamName() string            { return r.Team }
func (r HistoricalAverageRosterRow) Total() float64              { return r.TotalPoints }
func (r HistoricalAverageRosterRow) Bucket(pos Position) float64 { return r.Get(pos) }
