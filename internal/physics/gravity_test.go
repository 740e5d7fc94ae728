package physics

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cannon/internal/dynamo"
)

var _ = Describe("Gravity", func() {
	const (
		g          = 0.667
		planetMass = uint64(1_000_000)
	)

	DescribeTable("follows the inverse-square law toward the origin",
		func(x, y float64, ballMass uint64) {
			pos := dynamo.Vec2{X: x, Y: y}
			a := Gravity(pos, ballMass, planetMass, g)

			d := pos.Len()
			expected := g * float64(planetMass) * float64(ballMass) / (d * d) / float64(ballMass)
			Expect(a.Len()).To(BeNumerically("~", expected, expected*1e-12))

			// parallel to -pos
			Expect(a.X*pos.X + a.Y*pos.Y).To(BeNumerically("<", 0))
			cross := a.X*pos.Y - a.Y*pos.X
			Expect(cross).To(BeNumerically("~", 0, 1e-9))
		},
		Entry("above the surface", 0.0, 578.4, uint64(1)),
		Entry("to the left", -800.0, 0.0, uint64(1)),
		Entry("diagonal, heavy ball", 300.0, -400.0, uint64(25)),
		Entry("exactly at the clamp", 0.6, 0.8, uint64(1)),
	)

	It("clamps distances below one to the value at one", func() {
		atOne := Gravity(dynamo.Vec2{X: 1}, 1, planetMass, g).Len()
		for _, pos := range []dynamo.Vec2{{X: 0.5}, {Y: -0.01}, {X: 0.3, Y: 0.3}} {
			Expect(Gravity(pos, 1, planetMass, g).Len()).To(BeNumerically("~", atOne, atOne*1e-12))
		}
	})

	It("points at the origin inside the clamp", func() {
		pos := dynamo.Vec2{X: 0.3, Y: -0.4}
		a := Gravity(pos, 1, planetMass, g)
		unit := a.Scale(1 / a.Len())
		Expect(unit.X).To(BeNumerically("~", -0.6, 1e-12))
		Expect(unit.Y).To(BeNumerically("~", 0.8, 1e-12))
	})

	It("is zero at the exact origin", func() {
		Expect(Gravity(dynamo.Vec2{}, 1, planetMass, g)).To(Equal(dynamo.Vec2{}))
	})

	It("does not depend on the projectile's mass", func() {
		pos := dynamo.Vec2{X: 120, Y: 450}
		light := Gravity(pos, 1, planetMass, g)
		heavy := Gravity(pos, 40, planetMass, g)
		Expect(heavy.X).To(BeNumerically("~", light.X, math.Abs(light.X)*1e-12))
		Expect(heavy.Y).To(BeNumerically("~", light.Y, math.Abs(light.Y)*1e-12))
	})
})

var _ = Describe("Integration", func() {
	It("keeps a body at rest in place for any number of ticks", func() {
		pos := dynamo.Vec2{X: 12.5, Y: -3}
		vel := dynamo.Vec2{}
		for i := 0; i < 1000; i++ {
			vel = Accelerate(vel, dynamo.Vec2{}, DefaultDt, 2)
			pos = Advance(pos, vel, DefaultDt, 2)
		}
		Expect(pos).To(Equal(dynamo.Vec2{X: 12.5, Y: -3}))
	})

	It("scales both updates by dt and the speed factor", func() {
		vel := Accelerate(dynamo.Vec2{X: 1}, dynamo.Vec2{X: 6, Y: -12}, 0.5, 2)
		Expect(vel).To(Equal(dynamo.Vec2{X: 7, Y: -12}))

		pos := Advance(dynamo.Vec2{}, vel, 0.5, 2)
		Expect(pos).To(Equal(dynamo.Vec2{X: 7, Y: -12}))
	})
})
