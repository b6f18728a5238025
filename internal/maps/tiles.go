package maps

// Sprite indices in the atlas that game code and generated assets agree on.
const (
	TileEmpty  uint8 = 0
	TileGround uint8 = 1 // the only cell value the crawler and prey may stand on
	TileWall   uint8 = 2
	TileStone  uint8 = 3

	// TileLetterA is 'A'; letters follow in order. Digits sit at their ASCII codes.
	TileLetterA uint8 = 16

	TileCarrot uint8 = 80

	// TileTimerBar + n draws a timer slot holding n of 8 units.
	TileTimerBar uint8 = 86

	// TileRabbitHead + variant (0..5) and TileRabbitBody + variant (0..3).
	TileRabbitHead uint8 = 96
	TileRabbitBody uint8 = 112

	// TileFish - frame for frame 5..1; the last frame leaves plain water.
	TileFish  uint8 = 109
	TileWater uint8 = 108
	// TileWave - frame for frame 2..0.
	TileWave uint8 = 111

	// TileCrawler + tail*4 + facing + frame*16 draws a body segment.
	TileCrawler uint8 = 128
	// TileCrawlerBlink is added to a still body segment on the bright blink phase.
	TileCrawlerBlink uint8 = 64
	// TileCrawlerHead + facing + mood (0 plain, 4 poisoned, 8 eating), +16 while blinking.
	TileCrawlerHead uint8 = 208
)

// LetterTile returns the atlas index used for r in generated planes.
// Unsupported runes map to TileEmpty.
func LetterTile(r rune) uint8 {
	switch {
	case r >= 'A' && r <= 'Z':
		return TileLetterA + uint8(r-'A')
	case r >= 'a' && r <= 'z':
		return TileLetterA + uint8(r-'a')
	case r >= '0' && r <= '9':
		return uint8(r)
	}
	return TileEmpty
}
