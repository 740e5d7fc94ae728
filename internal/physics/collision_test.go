package physics

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cannon/internal/dynamo"
)

var _ = Describe("Collision", func() {
	const planetRadius = 378.4

	planet := Body{Kind: Attractor, Mass: 1_000_000, Radius: planetRadius}

	Describe("Collides", func() {
		It("flags overlap with the planet", func() {
			Expect(Collides(dynamo.Vec2{Y: planetRadius + 7}, planetRadius, 7.5)).To(BeTrue())
			Expect(Collides(dynamo.Vec2{Y: planetRadius + 8}, planetRadius, 7.5)).To(BeFalse())
		})

		It("treats touching as no collision", func() {
			Expect(Collides(dynamo.Vec2{X: planetRadius + 7.5}, planetRadius, 7.5)).To(BeFalse())
		})
	})

	Describe("Resolve", func() {
		It("reflects a vertical impact with restitution", func() {
			ball := Body{Kind: Projectile, Mass: 1, Radius: 7.5, Pos: dynamo.Vec2{Y: 390}, Vel: dynamo.Vec2{Y: -300}}

			vel, planetVel, err := Resolve(ball, planet, 0.8)
			Expect(err).NotTo(HaveOccurred())
			Expect(vel.Len()).To(BeNumerically("~", 0.8*300, 0.01))
			Expect(vel.Y).To(BeNumerically(">", 0))
			Expect(vel.X).To(BeNumerically("~", 0, 1e-9))
			Expect(planetVel.Len()).To(BeNumerically("<", 0.01))
		})

		It("keeps the tangential component", func() {
			ball := Body{Kind: Projectile, Mass: 1, Radius: 7.5, Pos: dynamo.Vec2{X: 390}, Vel: dynamo.Vec2{X: -100, Y: 40}}

			vel, _, err := Resolve(ball, planet, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(vel.X).To(BeNumerically("~", 100, 0.01))
			Expect(vel.Y).To(BeNumerically("~", 40, 1e-9))
		})

		It("leaves the planet at rest for a dominant planet mass", func() {
			for _, angle := range []float64{0, 0.4, 1.3, 2.9, -2.2} {
				pos := dynamo.Vec2{X: 386}.Rotate(angle)
				ball := Body{Kind: Projectile, Mass: 1, Radius: 7.5, Pos: pos, Vel: pos.Scale(-1)}

				_, planetVel, err := Resolve(ball, planet, 0.8)
				Expect(err).NotTo(HaveOccurred())
				Expect(planetVel.Len()).To(BeNumerically("<", 0.01))
			}
		})

		It("reports an integrity fault for comparable masses", func() {
			light := Body{Kind: Attractor, Mass: 10, Radius: planetRadius}
			ball := Body{Kind: Projectile, Mass: 1, Radius: 7.5, Pos: dynamo.Vec2{Y: 390}, Vel: dynamo.Vec2{Y: -300}}

			_, planetVel, err := Resolve(ball, light, 0.8)
			Expect(errors.Is(err, dynamo.ErrIntegrity)).To(BeTrue())
			Expect(planetVel.Len()).To(BeNumerically(">", 1))
		})
	})

	It("rounds to cents", func() {
		Expect(roundCents(0.004)).To(Equal(0.0))
		Expect(roundCents(-0.004)).To(BeNumerically("==", 0))
		Expect(roundCents(0.006)).To(Equal(0.01))
		Expect(math.Abs(roundCents(-0.006))).To(Equal(0.01))
	})
})
