package service

import (
	"fmt"
	"strconv"

	"github.com/omarshaarawi/sleeperstats/internal/models"
)

var slotEligibility = map[string][]models.Position{
	"QB":         {models.QB},
	"RB":         {models.RB},
	"WR":         {models.WR},
	"TE":         {models.TE},
	"K":          {models.K},
	"DEF":        {models.DEF},
	"FLEX":       {models.RB, models.WR, models.TE},
	"WRRB_FLEX":  {models.RB, models.WR},
	"REC_FLEX":   {models.WR, models.TE},
	"SUPER_FLEX": {models.QB, models.RB, models.WR, models.TE},
}

type lineupPlayer struct {
	name   string
	pos    models.Position
	points float64
}

// AssignLineup places starters into the league's configured slots and
// returns one "Name (points)" column per filled slot, labelled RB1, FLEX2 and
// so on. Single-position slots are filled before flex slots so a flex never
// takes a player a dedicated slot needs; within a pool players are taken in
// starter order. Bench, IR and taxi slots are ignored.
func AssignLineup(slots []string, starters []lineupPlayer) map[string]string {
	if len(slots) == 0 || len(starters) == 0 {
		return nil
	}

	labels := make([]string, len(slots))
	seen := make(map[string]int)
	for i, slot := range slots {
		if _, ok := slotEligibility[slot]; !ok {
			continue
		}
		seen[slot]++
		labels[i] = slot + strconv.Itoa(seen[slot])
	}

	used := make([]bool, len(starters))
	take := func(eligible []models.Position) (lineupPlayer, bool) {
		for i, p := range starters {
			if used[i] {
				continue
			}
			for _, pos := range eligible {
				if p.pos == pos {
					used[i] = true
					return p, true
				}
			}
		}
		return lineupPlayer{}, false
	}

	lineup := make(map[string]string)
	for _, flex := range []bool{false, true} {
		for i, slot := range slots {
			eligible, ok := slotEligibility[slot]
			if !ok || (len(eligible) > 1) != flex {
				continue
			}
			if p, ok := take(eligible); ok {
				lineup[labels[i]] = fmt.Sprintf("%s (%.2f)", p.name, p.points)
			}
		}
	}
	if len(lineup) == 0 {
		return nil
	}
	return lineup
}
