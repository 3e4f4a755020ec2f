package entity

import (
	"fmt"

	"github.com/milk9111/folio/common"
	"github.com/milk9111/folio/ecs"
	"github.com/milk9111/folio/ecs/component"
	"github.com/milk9111/folio/prefabs"
	"github.com/milk9111/folio/rig"
)

func vec(s prefabs.Vec3Spec) common.Vec3 {
	return common.V3(s.X, s.Y, s.Z)
}

// RigConfig fills a rig config from the camera spec. Zero fields keep the
// rig defaults.
func RigConfig(spec prefabs.CameraSpec) rig.Config {
	cfg := rig.DefaultConfig()
	if spec.Position != (prefabs.Vec3Spec{}) {
		cfg.Base.Position = vec(spec.Position)
	}
	if spec.LookAt != (prefabs.Vec3Spec{}) {
		cfg.Base.LookAt = vec(spec.LookAt)
	}
	if spec.FOV > 0 {
		cfg.FOV = spec.FOV
	}
	if spec.MaxOffset > 0 {
		cfg.MaxOffset = spec.MaxOffset
	}
	if spec.Ease > 0 {
		cfg.Ease = spec.Ease
	}
	if spec.ResetEase > 0 {
		cfg.ResetEase = spec.ResetEase
	}
	if spec.RotateSpeed > 0 {
		cfg.RotateSpeed = spec.RotateSpeed
	}
	if spec.PhiMargin > 0 {
		cfg.PhiMargin = spec.PhiMargin
	}
	if spec.IdleDelay > 0 {
		cfg.IdleDelay = spec.IdleDelay
	}
	if spec.Epsilon > 0 {
		cfg.Epsilon = spec.Epsilon
	}
	return cfg
}

func NewCamera(w *ecs.World, spec prefabs.CameraSpec) (ecs.Entity, *rig.Rig, error) {
	r := rig.New(RigConfig(spec))

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{Rig: r}); err != nil {
		return 0, nil, fmt.Errorf("camera: add camera component: %w", err)
	}
	return camera, r, nil
}
