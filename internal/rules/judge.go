package rules

import (
	"github.com/rocketscienceinc/caro/internal/board"
	"github.com/rocketscienceinc/caro/internal/entity"
)

// Judge holds the active rule, if any.
type Judge struct {
	rule   Rule
	active bool
}

func NewJudge() *Judge {
	return &Judge{}
}

func (that *Judge) SetRule(ruleType entity.RuleType) error {
	rule, err := ForType(ruleType)
	if err != nil {
		return err
	}

	that.rule = rule
	that.active = true

	return nil
}

func (that *Judge) UnsetRule() {
	that.rule = Rule{}
	that.active = false
}

func (that *Judge) Rule() (Rule, bool) {
	return that.rule, that.active
}

// Evaluate checks for a win before a draw, so a full board with a winning line reports
// the win.
func (that *Judge) Evaluate(b board.Board, anchor *entity.Coordinate) entity.Verdict {
	if !that.active {
		return entity.VerdictRuleNotFound
	}

	if verdict := that.rule.CheckWin(b, anchor); verdict != entity.VerdictOngoing {
		return verdict
	}

	return that.rule.CheckDraw(b)
}
