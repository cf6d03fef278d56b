package components

import (
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	confettiFrames   = 40
	confettiInterval = 60 * time.Millisecond
	confettiGravity  = 0.18
)

var confettiGlyphs = []string{"*", "✦", "•", "◆", "▪", "✧"}

var confettiColors = []lipgloss.Color{"#EF4444", "#F59E0B", "#10B981", "#3B82F6", "#A78BFA", "#EC4899", "#FDE047"}

// ConfettiTickMsg advances a running confetti animation
type ConfettiTickMsg struct {
	ID int
}

type particle struct {
	x, y   float64
	vx, vy float64
	glyph  string
	color  lipgloss.Color
}

// Confetti is a short celebratory particle burst rendered in a fixed box
type Confetti struct {
	id        int
	width     int
	height    int
	frame     int
	particles []particle
}

// NewConfetti creates a burst of n particles from the bottom center of a
// width x height box. The same seed yields the same animation.
func NewConfetti(id int, width, height, n int, seed uint64) Confetti {
	if width < 10 {
		width = 10
	}
	if height < 4 {
		height = 4
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	c := Confetti{id: id, width: width, height: height}
	for i := 0; i < n; i++ {
		c.particles = append(c.particles, particle{
			x:     float64(width) / 2,
			y:     float64(height - 1),
			vx:    (rng.Float64() - 0.5) * float64(width) / 12,
			vy:    -(0.8 + rng.Float64()*float64(height)/5),
			glyph: confettiGlyphs[rng.IntN(len(confettiGlyphs))],
			color: confettiColors[rng.IntN(len(confettiColors))],
		})
	}
	return c
}

// Tick schedules the next frame
func (c Confetti) Tick() tea.Cmd {
	id := c.id
	return tea.Tick(confettiInterval, func(time.Time) tea.Msg {
		return ConfettiTickMsg{ID: id}
	})
}

func (c Confetti) ID() int { return c.id }

// Done reports whether the animation has played out
func (c Confetti) Done() bool {
	return c.frame >= confettiFrames
}

// Step advances all particles one frame
func (c Confetti) Step() Confetti {
	if c.Done() {
		return c
	}
	next := make([]particle, len(c.particles))
	for i, p := range c.particles {
		p.x += p.vx
		p.y += p.vy
		p.vy += confettiGravity
		next[i] = p
	}
	c.particles = next
	c.frame++
	return c
}

// Update steps the animation for its own tick messages and schedules the
// next one until done
func (c Confetti) Update(msg tea.Msg) (Confetti, tea.Cmd) {
	tick, ok := msg.(ConfettiTickMsg)
	if !ok || tick.ID != c.id || c.Done() {
		return c, nil
	}
	c = c.Step()
	if c.Done() {
		return c, nil
	}
	return c, c.Tick()
}

// Visible counts particles currently inside the box
func (c Confetti) Visible() int {
	n := 0
	for _, p := range c.particles {
		if c.inside(p) {
			n++
		}
	}
	return n
}

func (c Confetti) inside(p particle) bool {
	return p.x >= 0 && int(p.x) < c.width && p.y >= 0 && int(p.y) < c.height
}

func (c Confetti) View() string {
	grid := make([][]string, c.height)
	for row := range grid {
		grid[row] = make([]string, c.width)
		for col := range grid[row] {
			grid[row][col] = " "
		}
	}
	for _, p := range c.particles {
		if !c.inside(p) {
			continue
		}
		grid[int(p.y)][int(p.x)] = lipgloss.NewStyle().Foreground(p.color).Render(p.glyph)
	}

	lines := make([]string, c.height)
	for row := range grid {
		lines[row] = strings.Join(grid[row], "")
	}
	return strings.Join(lines, "\n")
}
