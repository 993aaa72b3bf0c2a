/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package display renders live optimizer progress in a terminal.
package display

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"sigs.k8s.io/worthsplit/pkg/optimizer/algorithms"
	"sigs.k8s.io/worthsplit/pkg/optimizer/runner"
)

// Run is the part of a runner.Handle the view needs.
type Run interface {
	Poll() (runner.Update, bool)
	Latest() runner.Update
	Cancel()
	Done() <-chan struct{}
	Generations() int
}

var _ Run = (*runner.Handle)(nil)

var (
	styleDefault = tcell.StyleDefault
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleBar     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleLabel   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleHint    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFailed  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// View draws one run on a tcell screen and forwards q/Esc as cancellation.
type View struct {
	screen      tcell.Screen
	title       string
	totalWeight int64
	interval    time.Duration

	latest     runner.Update
	cancelling bool
}

// NewView wraps an initialized screen. totalWeight scales fitness into
// worth units for display.
func NewView(screen tcell.Screen, title string, totalWeight int64) *View {
	return &View{
		screen:      screen,
		title:       title,
		totalWeight: totalWeight,
		interval:    50 * time.Millisecond,
	}
}

// Run redraws until the run reaches a terminal state and returns that
// final update. Cancelling ctx cancels the run as well.
func (v *View) Run(ctx context.Context, run Run) (runner.Update, error) {
	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go v.screen.ChannelEvents(events, quit)
	defer close(quit)

	v.draw(run.Generations())
	for {
		select {
		case <-ctx.Done():
			run.Cancel()
			<-run.Done()
			v.latest = run.Latest()
			v.draw(run.Generations())
			return v.latest, ctx.Err()

		case ev := <-events:
			v.handleEvent(ev, run)

		case <-run.Done():
			v.latest = run.Latest()
			v.draw(run.Generations())
			return v.latest, nil

		case <-ticker.C:
			if u, ok := run.Poll(); ok {
				v.latest = u
			}
			v.draw(run.Generations())
		}
	}
}

func (v *View) handleEvent(ev tcell.Event, run Run) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
			if !v.cancelling {
				v.cancelling = true
				run.Cancel()
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
}

func (v *View) draw(generations int) {
	v.screen.Clear()
	width, _ := v.screen.Size()
	u := v.latest

	y := 0
	v.text(0, y, styleTitle, v.title)
	y += 2

	done := 0
	if u.State != algorithms.StateIdle {
		done = u.Snapshot.Generation + 1
	}
	v.text(0, y, styleLabel, fmt.Sprintf("Generation %d / %d", done, generations))
	y++
	v.progressBar(0, y, width, done, generations)
	y += 2

	if f, ok := u.Best.Score(); ok {
		v.text(0, y, styleDefault, fmt.Sprintf("Best fitness   %.6f   (real %.2f)", f, f*float64(v.totalWeight)))
	} else {
		v.text(0, y, styleDefault, "Best fitness   -")
	}
	y++
	v.text(0, y, styleDefault, fmt.Sprintf("Generation     best %.6f   average %.6f   diversity %.6f",
		u.Snapshot.BestFitness, u.Snapshot.AverageFitness, u.Snapshot.AverageDiff))
	y += 2

	state := u.State.String()
	stateStyle := styleDefault
	switch {
	case u.State == algorithms.StateFailed:
		stateStyle = styleFailed
		if u.Err != nil {
			state += ": " + u.Err.Error()
		}
	case v.cancelling && !u.State.Terminal():
		state = "Cancelling"
	}
	v.text(0, y, stateStyle, "State: "+state)
	y++
	if !u.State.Terminal() {
		v.text(0, y, styleHint, "q/Esc to cancel")
	}
	y += 2

	if len(u.Best.Assignment) > 0 {
		v.text(0, y, styleLabel, "Best assignment:")
		y++
		v.text(0, y, styleDefault, truncate(fmt.Sprint(u.Best.Assignment), width))
	}

	v.screen.Show()
}

func (v *View) text(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (v *View) progressBar(x, y, width, done, total int) {
	barWidth := width - 2
	if barWidth < 1 || total <= 0 {
		return
	}
	filled := done * barWidth / total
	if filled > barWidth {
		filled = barWidth
	}
	v.screen.SetContent(x, y, '[', nil, styleLabel)
	for i := 0; i < barWidth; i++ {
		r := ' '
		if i < filled {
			r = '█'
		}
		v.screen.SetContent(x+1+i, y, r, nil, styleBar)
	}
	v.screen.SetContent(x+1+barWidth, y, ']', nil, styleLabel)
}

func truncate(s string, width int) string {
	if width <= 3 || len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}

// Open creates and initializes the terminal screen.
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(styleDefault)
	screen.HideCursor()
	return screen, nil
}
