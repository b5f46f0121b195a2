package timer

import (
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"
)

var actionTimerLogger = log.With().Str("logger_name", "timer::action_timer").Logger()

// TimerMsg identifies the player whose action clock is running. CanCheck
// picks the substituted action on expiry: check when nothing is owed,
// fold otherwise.
type TimerMsg struct {
	PlayerID string
	CanCheck bool
	ExpireAt time.Time
}

// ActionTimer runs one action clock per table and fires the callback with
// the expired TimerMsg so the manager can substitute a default action.
type ActionTimer struct {
	tableCode string

	chReset   chan TimerMsg
	chPause   chan bool
	chEndLoop chan bool

	callback        func(TimerMsg)
	currentTimerMsg TimerMsg

	secondsTillTimeout uint32

	crashHandler func()
}

func NewActionTimer(tableCode string, callback func(TimerMsg), crashHandler func()) *ActionTimer {
	at := ActionTimer{
		tableCode:    tableCode,
		chReset:      make(chan TimerMsg),
		chPause:      make(chan bool),
		chEndLoop:    make(chan bool, 10),
		callback:     callback,
		crashHandler: crashHandler,
	}
	return &at
}

func (a *ActionTimer) Run() {
	go a.loop()
}

func (a *ActionTimer) Destroy() {
	a.chEndLoop <- true
}

func (a *ActionTimer) loop() {
	defer func() {
		err := recover()
		if err != nil {
			// Panic occurred.
			debug.PrintStack()
			actionTimerLogger.Error().
				Str("table", a.tableCode).
				Msgf("Action timer loop returning due to panic: %s\nStack Trace:\n%s", err, string(debug.Stack()))

			if a.crashHandler != nil {
				a.crashHandler()
			}
		} else {
			actionTimerLogger.Info().Str("table", a.tableCode).Msg("Action timer loop returning")
		}
	}()

	var expirationTime time.Time
	paused := true
	for {
		select {
		case <-a.chEndLoop:
			return
		case <-a.chPause:
			paused = true
		case msg := <-a.chReset:
			// Start the new timer.
			a.currentTimerMsg = msg
			expirationTime = msg.ExpireAt
			paused = false
		default:
			if !paused {
				remainingSec := expirationTime.Sub(time.Now()).Seconds()
				if remainingSec < 0 {
					remainingSec = 0
				}
				a.secondsTillTimeout = uint32(remainingSec)

				if remainingSec <= 0 {
					// The player timed out.
					a.callback(a.currentTimerMsg)
					expirationTime = time.Time{}
					paused = true
				}
			}
			time.Sleep(100 * time.Millisecond)
		}
	}
}

func (a *ActionTimer) Pause() {
	a.chPause <- true
}

func (a *ActionTimer) Reset(t TimerMsg) {
	a.chReset <- t
}

func (a *ActionTimer) GetRemainingSec() uint32 {
	return a.secondsTillTimeout
}

func (a *ActionTimer) GetCurrentTimerMsg() TimerMsg {
	return a.currentTimerMsg
}
