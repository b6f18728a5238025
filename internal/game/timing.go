package game

import "time"

const (
	FPS              = 60 // simulation ticks per second
	MaxDroppedFrames = 4  // most ticks simulated for one rendered frame

	Cols = 36 // grid width in cells
	Rows = 28 // grid height in cells
)

// Phase delays are wall-clock, everything else counts ticks.
const (
	TitleDelay = 50 * time.Millisecond
	PlayDelay  = 500 * time.Millisecond
)

// Task throttles, in ticks per run.
const (
	TimerThrottleBase     = 26 // minus TimerThrottleStep per level
	TimerThrottleStep     = 5
	FishThrottle          = 6
	WaveThrottle          = 8
	LevelCompleteThrottle = 3
	BlinkThrottle         = 3
)

// Gameplay tuning.
const (
	MoveTicks  = 12 // ticks for the crawler to slide one cell
	StartTime  = 73 // timer units at level start, eight per bar slot
	PreyTime   = 8  // timer units gained per prey eaten
	StartLives = 3
	LastLevel  = 3

	ScorePrey      = 100
	ScoreFoodBonus = 5 // per food cell left when a level is cleared
	TopScoreFloor  = 500

	PreyEatTicks      = 204
	PreyRestAfterEat  = 108
	PreyRestAfterJump = 107
	PreyStartleBelow  = 102 // idle values below this can be startled
	PreyStartleOdds   = 6   // one in this many

	FishChance = 4 // one in this many runs starts a jump
)

// TimerThrottle returns the countdown timer's throttle for level.
func TimerThrottle(level int) int {
	return TimerThrottleBase - TimerThrottleStep*level
}
