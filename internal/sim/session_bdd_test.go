package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
)

var _ = Describe("Session", func() {
	var (
		cfg    dynamo.Config
		bounds dynamo.Vec2
	)

	BeforeEach(func() {
		cfg = dynamo.DefaultConfig()
		bounds = sim.ScreenBounds2(800, 800, sim.DefaultUnit, sim.DefaultMargin)
	})

	Context("with a symmetric binary", func() {
		var s *sim.Session[dynamo.Vec2]

		BeforeEach(func() {
			cfg.Dt = 0.01
			bodies := []dynamo.Body[dynamo.Vec2]{
				{Mass: 1, Pos: dynamo.Vec2{X: -1, Y: 0.2}, Vel: dynamo.Vec2{Y: -0.4}},
				{Mass: 1, Pos: dynamo.Vec2{X: 1, Y: -0.2}, Vel: dynamo.Vec2{Y: 0.4}},
			}
			var err error
			s, err = sim.New(dynamo.NewStore(bodies), nil, nil, bounds, cfg)
			Expect(err).NotTo(HaveOccurred())
		})

		It("stays symmetric about the origin", func() {
			for i := 0; i < 300; i++ {
				Expect(s.Tick()).To(BeTrue())
				f := s.Snapshot()
				Expect(f.Bodies).To(HaveLen(2))
				Expect(f.Bodies[0].Pos.Add(f.Bodies[1].Pos).Norm()).To(BeNumerically("<", 1e-12))
			}
		})

		It("keeps total momentum at zero", func() {
			_, err := s.Run(context.Background(), func() bool { return s.Ticks() < 100 })
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Ticks()).To(Equal(100))
			Expect(dynamo.TotalMomentum(s.Snapshot().Bodies).Norm()).To(BeNumerically("<", 1e-12))
		})

		It("reports elapsed time as ticks times dt", func() {
			for i := 0; i < 7; i++ {
				s.Tick()
			}
			Expect(s.Elapsed()).To(BeNumerically("~", 0.07, 1e-15))
		})
	})

	Context("when bodies collide", func() {
		It("merges the pair and compacts the store", func() {
			bodies := []dynamo.Body[dynamo.Vec2]{
				{Mass: 1, Pos: dynamo.Vec2{X: -1}, Vel: dynamo.Vec2{X: -3}},
				{Mass: 3, Pos: dynamo.Vec2{X: 1}, Vel: dynamo.Vec2{X: 3}},
				{Mass: 0.5, Pos: dynamo.Vec2{Y: 20}},
				{Mass: 0.25, Pos: dynamo.Vec2{Y: -20}},
			}
			store := dynamo.NewStore(bodies)
			s, err := sim.New(store, nil, physics.NewCollider[dynamo.Vec2](nil), bounds, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Tick()).To(BeTrue())
			Expect(s.Merges()).To(Equal(1))
			Expect(store.Len()).To(Equal(3))
			Expect(store.Cap()).To(Equal(4))

			f := s.Snapshot()
			Expect(f.Merged).To(BeTrue())
			Expect(f.Bodies[0].Mass).To(Equal(4.0))
			Expect(f.Bodies[1].Mass).To(Equal(0.5))
			Expect(f.Bodies[2].Mass).To(Equal(0.25))
			Expect(dynamo.TotalMass(f.Bodies)).To(BeNumerically("~", 4.75, 1e-12))
		})

		It("never merges a stationary pair with the default rule", func() {
			bodies := []dynamo.Body[dynamo.Vec2]{
				{Mass: 1e-9, Pos: dynamo.Vec2{X: -1}},
				{Mass: 1e-9, Pos: dynamo.Vec2{X: 1}},
			}
			cfg.MaxTicks = 50
			s, err := sim.New(dynamo.NewStore(bodies), nil, nil, bounds, cfg)
			Expect(err).NotTo(HaveOccurred())

			ticks, err := s.Run(context.Background(), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(ticks).To(Equal(50))
			Expect(s.Merges()).To(BeZero())
			Expect(s.Len()).To(Equal(2))
		})
	})

	Context("with no bodies", func() {
		It("ends with zero ticks", func() {
			s, err := sim.New(dynamo.NewStore[dynamo.Vec2](nil), nil, nil, bounds, cfg)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.InBounds()).To(BeFalse())
			ticks, err := s.Run(context.Background(), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(ticks).To(BeZero())
		})
	})

	Context("when every body escapes", func() {
		It("stops ticking once the last body leaves the bounds", func() {
			bodies := []dynamo.Body[dynamo.Vec2]{
				{Mass: 1, Pos: dynamo.Vec2{X: 40.5}, Vel: dynamo.Vec2{X: 1}},
			}
			s, err := sim.New(dynamo.NewStore(bodies), nil, nil, bounds, cfg)
			Expect(err).NotTo(HaveOccurred())

			ticks, err := s.Run(context.Background(), nil)
			Expect(err).NotTo(HaveOccurred())
			// 40.5 -> 41.5 -> 42.5; the tick that starts at 42.5 is refused.
			Expect(ticks).To(Equal(2))
			Expect(s.Snapshot().Bodies[0].Pos.X).To(BeNumerically("~", 42.5, 1e-12))
		})
	})
})
