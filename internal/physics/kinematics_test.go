package physics_test

import (
	"encoding/json"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/kinesim/internal/physics"
	"github.com/san-kum/kinesim/internal/vmath"
)

func run(o *physics.Object, step float64, ticks int) {
	for i := 0; i < ticks; i++ {
		o.Simulate(step)
	}
}

var _ = Describe("Kinematics", func() {
	var (
		obj *physics.Object
		pos *physics.Position
		vel *physics.Velocity
		acc *physics.Acceleration
	)

	BeforeEach(func() {
		obj = physics.NewSolid(physics.SolidConfig{Name: "ball", Size: vmath.V(1, 1)}, nil)
		pos, _ = physics.Lookup[*physics.Position](obj, physics.KindPosition)
		vel, _ = physics.Lookup[*physics.Velocity](obj, physics.KindVelocity)
		acc, _ = physics.Lookup[*physics.Acceleration](obj, physics.KindAcceleration)
	})

	Context("with constant acceleration", func() {
		It("matches the closed-form free fall", func() {
			acc.SetInitialValue(vmath.V(0, -9.8))
			obj.Reset()
			run(obj, 0.1, 10)

			Expect(pos.Value().Y).To(BeNumerically("~", -4.9, 1e-3))
			Expect(pos.Value().X).To(BeNumerically("~", 0, 1e-12))
			Expect(vel.Value().Y).To(BeNumerically("~", -9.8, 1e-9))
		})

		It("matches a projectile trajectory", func() {
			vel.SetInitialValue(vmath.V(3, 4))
			acc.SetInitialValue(vmath.V(0, -2))
			obj.Reset()
			run(obj, 0.05, 40)

			Expect(pos.Value().X).To(BeNumerically("~", 6, 1e-9))
			Expect(pos.Value().Y).To(BeNumerically("~", 4*2-0.5*2*4, 1e-9))
		})
	})

	Context("with a centripetal source", func() {
		const (
			radius = 5.0
			omega  = 1.0
			step   = 0.001
		)

		BeforeEach(func() {
			pos.SetInitialValue(vmath.V(radius, 0))
			vel.SetInitialValue(vmath.V(0, omega*radius))
			c, ok := physics.Lookup[*physics.CentripetalAcceleration](obj, physics.KindCentripetalAcceleration)
			Expect(ok).To(BeTrue())
			c.SetInitialValue(vmath.VectorModulus{Vector: vmath.Zero, Modulus: physics.ModulusFor(omega, radius)})
			obj.Reset()
		})

		It("keeps the radius over a full period", func() {
			ticks := int(math.Ceil(2 * math.Pi / omega / step))
			for i := 0; i < ticks; i++ {
				obj.Simulate(step)
				Expect(pos.Value().Length()).To(BeNumerically("~", radius, 1e-2))
			}
		})

		It("points acceleration at the centre", func() {
			obj.Simulate(step)
			a := acc.Value()
			Expect(a.Length()).To(BeNumerically("~", omega*omega*radius, 1e-9))
			Expect(vmath.Determinant(vmath.Zero, pos.Value(), a)).To(BeNumerically("~", 0, 1e-9))
			Expect(a.Dot(pos.Value())).To(BeNumerically("<", 0))
		})
	})

	Context("when the object sits on the centripetal target", func() {
		It("contributes nothing instead of NaN", func() {
			o := physics.NewObject("pinned", nil)
			a := physics.NewAcceleration(o, vmath.V(0, -1))
			Expect(o.Add(physics.NewPosition(o, vmath.V(2, 2)))).To(Succeed())
			Expect(o.Add(a)).To(Succeed())
			Expect(o.Add(physics.NewCentripetalAcceleration(o, vmath.VectorModulus{Vector: vmath.V(2, 2), Modulus: 4}))).To(Succeed())

			o.Reset()
			a.SetValue(vmath.V(5, 5))
			o.Simulate(0.1)

			Expect(o.Valid()).To(BeTrue())
			Expect(a.Value()).To(Equal(vmath.V(0, -1)))
		})
	})

	Describe("Displacement", func() {
		It("follows position and refuses user edits", func() {
			vel.SetInitialValue(vmath.V(3, 4))
			obj.Reset()
			obj.Simulate(1)

			d, ok := physics.Lookup[*physics.Displacement](obj, physics.KindDisplacement)
			Expect(ok).To(BeTrue())
			Expect(pos.Value()).To(Equal(vmath.V(3, 4)))
			Expect(d.Value()).To(Equal(vmath.V(3, 4)))

			err := obj.Edit(physics.KindDisplacement, json.RawMessage(`{"x":1,"y":1}`))
			Expect(err).To(MatchError(physics.ErrNotChangeable))
			Expect(d.Value()).To(Equal(vmath.V(3, 4)))
		})
	})

	Describe("Area cascade", func() {
		It("recomputes area when the size baseline changes", func() {
			size, _ := physics.Lookup[*physics.Size](obj, physics.KindSize)
			area, _ := physics.Lookup[*physics.Area](obj, physics.KindArea)

			size.SetInitialValue(vmath.V(4, 3))

			Expect(area.InitialValue()).To(Equal(12.0))
			Expect(area.Value()).To(Equal(12.0))
		})
	})

	Describe("Reset", func() {
		It("restores every initial value", func() {
			vel.SetInitialValue(vmath.V(1, 1))
			acc.SetInitialValue(vmath.V(0.3, -0.7))
			obj.Reset()
			run(obj, 0.1, 25)

			obj.Reset()
			Expect(pos.Value()).To(Equal(pos.InitialValue()))
			Expect(vel.Value()).To(Equal(vel.InitialValue()))
			Expect(acc.Value()).To(Equal(acc.InitialValue()))
		})
	})
})

var _ = Describe("Missing siblings", func() {
	It("lets velocity move position without acceleration", func() {
		o := physics.NewObject("drift", nil)
		p := physics.NewPosition(o, vmath.V(1, 1))
		v := physics.NewVelocity(o, vmath.V(2, 0))
		Expect(o.Add(p)).To(Succeed())
		Expect(o.Add(v)).To(Succeed())

		o.Reset()
		run(o, 0.5, 2)

		Expect(p.Value()).To(Equal(vmath.V(3, 1)))
		Expect(v.Value()).To(Equal(vmath.V(2, 0)))
	})

	It("integrates velocity without a position", func() {
		o := physics.NewObject("ghost", nil)
		v := physics.NewVelocity(o, vmath.Zero)
		a := physics.NewAcceleration(o, vmath.V(1, 0))
		Expect(o.Add(v)).To(Succeed())
		Expect(o.Add(a)).To(Succeed())

		o.Reset()
		run(o, 0.5, 4)

		Expect(v.Value().X).To(BeNumerically("~", 2, 1e-12))
	})

	It("leaves area at zero without a size", func() {
		o := physics.NewObject("flat", nil)
		a := physics.NewArea(o)
		Expect(o.Add(a)).To(Succeed())
		Expect(a.Value()).To(BeZero())
	})
})
