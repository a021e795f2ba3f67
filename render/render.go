// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"html"
	"log/slog"
	"strconv"

	"github.com/danielhkuo/fundpage/dom"
	"github.com/danielhkuo/fundpage/models"
	"github.com/danielhkuo/fundpage/progress"
)

// DOM contract
const (
	OverallRaisedID   = "overall-raised"
	OverallGoalID     = "overall-goal"
	OverallDonorsID   = "overall-donors"
	OverallProgressID = "overall-progress"

	PhaseAttr = "data-phase"

	FillSelector   = ".card-progress-fill"
	AmountSelector = ".card-progress-label span:nth-child(1)"
	StatusSelector = ".card-progress-label span:nth-child(2)"
	MetaSelector   = ".card-meta"
	LockSelector   = ".card-lock"

	LockedClass = "card-locked"
)

// Badge labels
const (
	BadgeLocked = "🔒 Locked"
	BadgeFunded = "✅ Funded"
	BadgeOpen   = "🟢 Open"
)

// Renderer writes a campaign snapshot into a page.
type Renderer struct {
	chain progress.Chain
}

func New(chain progress.Chain) *Renderer {
	return &Renderer{chain: chain}
}

// Render applies both the overall and per-phase figures.
func (r *Renderer) Render(doc dom.Document, snap models.CampaignSnapshot) {
	RenderOverall(doc, snap.Overall)
	r.RenderPhases(doc, snap.Phases)
}

// RenderOverall fills the aggregate section. Pages without an
// overall-raised element have no such section and are left alone.
func RenderOverall(doc dom.Document, overall models.AggregateRecord) {
	raisedEl := doc.GetElementByID(OverallRaisedID)
	if raisedEl == nil {
		return
	}

	raisedEl.SetText(progress.FormatUSD(overall.Raised))
	if el := doc.GetElementByID(OverallGoalID); el != nil {
		el.SetText(progress.FormatUSD(overall.Goal))
	}
	if el := doc.GetElementByID(OverallDonorsID); el != nil {
		el.SetText(progress.Supporters(overall.Donors))
	}
	if el := doc.GetElementByID(OverallProgressID); el != nil {
		el.SetStyle("width", percent(progress.Pct(overall.Raised, overall.Goal)))
	}
}

// RenderPhases updates every phase card present on the page.
func (r *Renderer) RenderPhases(doc dom.Document, phases map[string]models.PhaseRecord) {
	for _, st := range r.chain.Evaluate(phases) {
		card := doc.QuerySelector(phaseSelector(st.ID))
		if card == nil {
			continue
		}
		renderCard(card, st)
	}
}

func renderCard(card dom.Element, st progress.PhaseState) {
	p := st.Record

	if el := card.QuerySelector(FillSelector); el != nil {
		el.SetStyle("width", percent(st.Percent))
	}
	if el := card.QuerySelector(AmountSelector); el != nil {
		el.SetText(progress.FormatUSD(p.Raised) + " / " + progress.FormatUSD(p.Goal))
	}
	if el := card.QuerySelector(StatusSelector); el != nil {
		el.SetText(percent(st.Percent))
	}
	if el := card.QuerySelector(MetaSelector); el != nil {
		el.SetText(progress.Supporters(p.Donors))
	}

	badge := card.QuerySelector(LockSelector)

	if st.Locked {
		card.AddClass(LockedClass)
		if badge != nil {
			if err := badge.SetHTML(lockedBadgeHTML(st.PrerequisiteName)); err != nil {
				slog.Warn("failed to render lock badge", "phase", st.ID, "error", err)
				badge.SetText(BadgeLocked)
			}
		}
		card.SetAttr("aria-disabled", "true")
		card.SetAttr("onclick", "event.preventDefault()")
		return
	}

	card.RemoveClass(LockedClass)
	if badge != nil {
		if st.Completed {
			badge.SetText(BadgeFunded)
		} else {
			badge.SetText(BadgeOpen)
		}
	}
	card.RemoveAttr("aria-disabled")
	card.RemoveAttr("onclick")
}

func lockedBadgeHTML(prerequisite string) string {
	return BadgeLocked + `<br><span class="card-lock-detail">Opens when ` +
		html.EscapeString(prerequisite) + ` is 100% funded</span>`
}

func phaseSelector(id string) string {
	return "[" + PhaseAttr + `="` + id + `"]`
}

func percent(p int) string {
	return strconv.Itoa(p) + "%"
}
