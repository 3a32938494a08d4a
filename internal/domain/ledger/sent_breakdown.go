package ledger

import "strings"

// SentBucket clasifica un ítem para el desglose de "enviados" del dashboard.
type SentBucket int

const (
	BucketNone SentBucket = iota
	BucketRice
	BucketDhal
	BucketSalt
	BucketSugar
	BucketWater
	BucketOtherEssentials
)

// ClassifySent clasifica por nombre de ítem y de categoría (sin distinguir mayúsculas).
// Las raciones secas se reconocen por nombre exacto; el agua por categoría "water"
// o nombre que contenga "water"; "otros esenciales" son sanitarios, galletas y la categoría "medical".
func ClassifySent(itemName, categoryName string) SentBucket {
	name := strings.ToLower(strings.TrimSpace(itemName))
	cat := strings.ToLower(strings.TrimSpace(categoryName))

	switch name {
	case "rice":
		return BucketRice
	case "dhal", "dal":
		return BucketDhal
	case "salt":
		return BucketSalt
	case "sugar":
		return BucketSugar
	}
	if cat == "water" || strings.Contains(name, "water") {
		return BucketWater
	}
	if strings.Contains(cat, "sanitary") || strings.Contains(name, "sanitary") ||
		strings.Contains(name, "biscuit") || cat == "medical" {
		return BucketOtherEssentials
	}
	return BucketNone
}

// SentBreakdown totales enviados convertidos a unidades físicas.
// Es una vista de presentación sobre el ledger; no participa en sus invariantes.
type SentBreakdown struct {
	RiceKg          int
	DhalKg          int
	SaltKg          int
	SugarKg         int
	WaterBottles    int
	OtherEssentials int // piezas
}

// Add suma al desglose las salidas de un ítem. totalSent es Σ OUT del ítem.
func (b *SentBreakdown) Add(itemName, categoryName, variantLabel string, totalSent int) {
	if totalSent <= 0 {
		return
	}
	switch ClassifySent(itemName, categoryName) {
	case BucketRice:
		b.RiceKg += KgPerUnit(variantLabel) * totalSent
	case BucketDhal:
		b.DhalKg += KgPerUnit(variantLabel) * totalSent
	case BucketSalt:
		b.SaltKg += KgPerUnit(variantLabel) * totalSent
	case BucketSugar:
		b.SugarKg += KgPerUnit(variantLabel) * totalSent
	case BucketWater:
		b.WaterBottles += totalSent
	case BucketOtherEssentials:
		b.OtherEssentials += totalSent
	}
}
