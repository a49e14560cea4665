package dex

type Tier int

const (
	TierCommon Tier = iota
	TierUncommon
	TierRare
	TierEpic
	TierLegendary
	TierMythic
)

func (t Tier) String() string {
	switch t {
	case TierMythic:
		return "Mythic"
	case TierLegendary:
		return "Legendary"
	case TierEpic:
		return "Epic"
	case TierRare:
		return "Rare"
	case TierUncommon:
		return "Uncommon"
	default:
		return "Common"
	}
}

// TierFor classifies a Pokemon by its base stat total.
func TierFor(p Pokemon) Tier {
	switch t := p.Total(); {
	case t >= 680:
		return TierMythic
	case t >= 580:
		return TierLegendary
	case t >= 500:
		return TierEpic
	case t >= 400:
		return TierRare
	case t >= 300:
		return TierUncommon
	default:
		return TierCommon
	}
}

func ColorForTier(t Tier) int {
	switch t {
	case TierMythic:
		return 0xE74C3C // red
	case TierLegendary:
		return 0xF1C40F // gold
	case TierEpic:
		return 0x9B59B6 // purple
	case TierRare:
		return 0x3498DB // blue
	case TierUncommon:
		return 0x2ECC71 // green
	default:
		return 0x95A5A6 // gray
	}
}
