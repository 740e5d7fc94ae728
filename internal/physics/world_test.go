package physics

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cannon/internal/dynamo"
)

const (
	testPlanetMass   = uint64(1_000_000)
	testPlanetRadius = 378.4
	testBallRadius   = 7.5
)

func newTestWorld(params Params) *World {
	w, err := NewWorld(params, testPlanetMass, testPlanetRadius)
	Expect(err).NotTo(HaveOccurred())
	return w
}

var _ = Describe("World", func() {
	var params Params

	BeforeEach(func() {
		params = DefaultParams()
	})

	Describe("construction", func() {
		It("places the attractor at the origin", func() {
			w := newTestWorld(params)
			planet := w.Attractor()
			Expect(planet.Kind).To(Equal(Attractor))
			Expect(planet.Pos).To(Equal(dynamo.Vec2{}))
			Expect(w.Len()).To(Equal(1))
			_, ok := w.Active()
			Expect(ok).To(BeFalse())
		})

		DescribeTable("rejects non-positive bodies",
			func(mass uint64, radius float64) {
				_, err := NewWorld(params, mass, radius)
				Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
			},
			Entry("zero mass", uint64(0), 10.0),
			Entry("zero radius", uint64(10), 0.0),
			Entry("negative radius", uint64(10), -1.0),
		)

		It("rejects invalid parameters", func() {
			params.Restitution = 1.5
			_, err := NewWorld(params, testPlanetMass, testPlanetRadius)
			Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
		})

		It("rejects a zero-mass projectile", func() {
			w := newTestWorld(params)
			_, err := w.Spawn(dynamo.Vec2{Y: 600}, dynamo.Vec2{}, 0, testBallRadius)
			Expect(errors.Is(err, dynamo.ErrParameterBounds)).To(BeTrue())
		})
	})

	Describe("one tick from the cannon", func() {
		It("accelerates toward the origin by the inverse-square law", func() {
			w := newTestWorld(params)
			height := testPlanetRadius + 200
			h, err := w.Spawn(dynamo.Vec2{Y: height}, dynamo.Vec2{X: 250}, 1, testBallRadius)
			Expect(err).NotTo(HaveOccurred())

			Expect(w.Step()).To(Succeed())

			b, err := w.Body(h)
			Expect(err).NotTo(HaveOccurred())
			expected := 0.667 * 1_000_000 / (height * height)
			Expect(b.Acc.Len()).To(BeNumerically("~", expected, 1e-9))
			Expect(b.Acc.X).To(BeNumerically("~", 0, 1e-12))
			Expect(b.Acc.Y).To(BeNumerically("<", 0))
			Expect(b.Pos.X).To(BeNumerically("~", 250*DefaultDt, 1e-9))
			Expect(b.Phase).To(Equal(Falling))
			Expect(w.Tick()).To(Equal(1))
		})
	})

	Describe("impact", func() {
		var (
			w *World
			h Handle
		)

		start := dynamo.Vec2{Y: testPlanetRadius + testBallRadius + 1}

		BeforeEach(func() {
			w = newTestWorld(params)
			var err error
			h, err = w.Spawn(start, dynamo.Vec2{Y: -300}, 1, testBallRadius)
			Expect(err).NotTo(HaveOccurred())
		})

		It("restores the pre-step position exactly", func() {
			Expect(w.Step()).To(Succeed())
			b, _ := w.Body(h)
			Expect(b.Collided).To(BeTrue())
			Expect(b.Pos).To(Equal(start))
		})

		It("bounces away with the restitution share of the impact speed", func() {
			g := Gravity(start, 1, testPlanetMass, params.G)
			impact := Accelerate(dynamo.Vec2{Y: -300}, g, params.Dt, params.SpeedScale).Len()

			Expect(w.Step()).To(Succeed())

			b, _ := w.Body(h)
			Expect(b.Vel.Len()).To(BeNumerically("~", params.Restitution*impact, 0.01))
			Expect(b.Vel.Y).To(BeNumerically(">", 0))
			Expect(b.Phase).To(Equal(PostCollision))
			Expect(b.Bounces).To(Equal(1))
			Expect(w.Collisions()).To(Equal(1))
		})

		It("clears the collision flag on the next free tick", func() {
			Expect(w.Step()).To(Succeed())
			Expect(w.Step()).To(Succeed())
			b, _ := w.Body(h)
			Expect(b.Collided).To(BeFalse())
			Expect(b.Phase).To(Equal(PostCollision))
		})

		It("only rolls back in rollback mode", func() {
			params.Response = ResponseRollback
			w = newTestWorld(params)
			h, _ = w.Spawn(start, dynamo.Vec2{Y: -300}, 1, testBallRadius)

			Expect(w.Step()).To(Succeed())
			b, _ := w.Body(h)
			Expect(b.Pos).To(Equal(start))
			Expect(b.Vel.Y).To(BeNumerically("<", -300))
		})
	})

	Describe("integrity fault", func() {
		It("faults the world and keeps returning the error", func() {
			w, err := NewWorld(params, 10, testPlanetRadius)
			Expect(err).NotTo(HaveOccurred())
			h, _ := w.Spawn(dynamo.Vec2{Y: testPlanetRadius + testBallRadius + 1}, dynamo.Vec2{Y: -300}, 1, testBallRadius)

			err = w.Step()
			Expect(errors.Is(err, dynamo.ErrIntegrity)).To(BeTrue())

			var simErr *dynamo.SimulationError
			Expect(errors.As(err, &simErr)).To(BeTrue())
			Expect(simErr.Handle).To(Equal(int(h)))
			Expect(simErr.Tick).To(Equal(0))

			Expect(w.Step()).To(MatchError(err))
			Expect(w.Err()).To(MatchError(err))
			Expect(w.Tick()).To(Equal(0))
		})
	})

	Describe("traces", func() {
		It("samples the active projectile every interval", func() {
			w := newTestWorld(params)
			_, _ = w.Spawn(dynamo.Vec2{Y: 2000}, dynamo.Vec2{X: 20}, 1, testBallRadius)

			for i := 0; i < 35; i++ {
				Expect(w.Step()).To(Succeed())
			}
			Expect(w.TracePoints()).To(HaveLen(3))
		})

		It("keeps only the newest points", func() {
			params.TraceCapacity = 4
			params.TraceInterval = 1
			w := newTestWorld(params)
			h, _ := w.Spawn(dynamo.Vec2{Y: 5000}, dynamo.Vec2{X: 60}, 1, testBallRadius)

			for i := 0; i < 9; i++ {
				Expect(w.Step()).To(Succeed())
			}
			before, _ := w.Body(h)
			Expect(w.Step()).To(Succeed())
			after, _ := w.Body(h)

			points := w.TracePoints()
			Expect(points).To(HaveLen(4))
			Expect(points[3]).To(Equal(before.Pos))
			Expect(points[3]).NotTo(Equal(after.Pos))
		})

		It("records the launch position on the first sampled tick", func() {
			params.TraceInterval = 1
			w := newTestWorld(params)
			start := dynamo.Vec2{Y: 4000}
			_, _ = w.Spawn(start, dynamo.Vec2{X: 40}, 1, testBallRadius)

			Expect(w.Step()).To(Succeed())
			Expect(w.TracePoints()).To(Equal([]dynamo.Vec2{start}))
		})

		It("hands the trace to the newest launch", func() {
			params.TraceInterval = 1
			w := newTestWorld(params)
			first, _ := w.Spawn(dynamo.Vec2{Y: 3000}, dynamo.Vec2{X: 30}, 1, testBallRadius)
			for i := 0; i < 5; i++ {
				Expect(w.Step()).To(Succeed())
			}

			second, _ := w.Spawn(dynamo.Vec2{Y: 3000}, dynamo.Vec2{X: 60}, 1, testBallRadius)
			active, ok := w.Active()
			Expect(ok).To(BeTrue())
			Expect(active).To(Equal(second))

			old, _ := w.Body(first)
			Expect(old.Active).To(BeFalse())
			Expect(old.Trace.Cap()).To(Equal(1))
			Expect(old.Trace.Len()).To(Equal(0))

			Expect(w.Step()).To(Succeed())
			old, _ = w.Body(first)
			Expect(old.Trace.Len()).To(Equal(0))
			Expect(w.TracePoints()).To(HaveLen(1))
			Expect(w.Projectiles()).To(Equal([]Handle{first, second}))
		})
	})

	It("returns an error for unknown handles", func() {
		w := newTestWorld(params)
		_, err := w.Body(7)
		Expect(errors.Is(err, dynamo.ErrUnknownHandle)).To(BeTrue())
	})
})
