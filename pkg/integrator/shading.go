package integrator

import "math"

// Base reflectance at normal incidence for dielectrics and metals
const (
	DielectricF0 = 0.04
	MetalF0      = 0.8
)

// BaseReflectance interpolates F0 between dielectric and metal
func BaseReflectance(metallic float64) float64 {
	return DielectricF0 + (MetalF0-DielectricF0)*metallic
}

// SchlickReflectance returns the Fresnel reflectance for the given F0 and
// cosine between the surface normal and the outgoing direction.
// The (1 - cos) base is clamped to [0,1] before the power.
func SchlickReflectance(f0, cosTheta float64) float64 {
	base := max(0, min(1, 1-cosTheta))
	if math.IsNaN(base) {
		base = 1
	}
	return f0 + (1-f0)*math.Pow(base, 5)
}

// EnergySplit returns the scalar specular and diffuse coefficients. Their
// sum never exceeds 1 for reflectance and metallic in [0,1]; metals do not
// scatter diffusely.
func EnergySplit(reflectance, metallic float64) (specular, diffuse float64) {
	return reflectance, (1 - reflectance) * (1 - metallic)
}
