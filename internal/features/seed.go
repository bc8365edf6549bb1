package features

// seedFeatures is the Wisconsin diagnostic breast cancer feature table, in
// the column order the classifier was trained with. Defaults are a
// malignant-leaning sample used to pre-fill the form.
// 30 features: 10 means, 10 standard errors, 10 worst values.
var seedFeatures = []struct {
	name string
	def  float64
}{
	// Mean (10)
	{"mean radius", 20.57},
	{"mean texture", 17.77},
	{"mean perimeter", 132.9},
	{"mean area", 1326.0},
	{"mean smoothness", 0.08474},
	{"mean compactness", 0.07864},
	{"mean concavity", 0.0869},
	{"mean concave points", 0.07017},
	{"mean symmetry", 0.1812},
	{"mean fractal dimension", 0.05667},

	// Standard error (10)
	{"radius error", 0.5435},
	{"texture error", 0.7339},
	{"perimeter error", 3.398},
	{"area error", 74.08},
	{"smoothness error", 0.005225},
	{"compactness error", 0.01308},
	{"concavity error", 0.0186},
	{"concave points error", 0.0134},
	{"symmetry error", 0.01389},
	{"fractal dimension error", 0.003532},

	// Worst (10)
	{"worst radius", 25.38},
	{"worst texture", 17.33},
	{"worst perimeter", 184.6},
	{"worst area", 2019.0},
	{"worst smoothness", 0.1622},
	{"worst compactness", 0.6656},
	{"worst concavity", 0.7119},
	{"worst concave points", 0.2654},
	{"worst symmetry", 0.4601},
	{"worst fractal dimension", 0.1189},
}

// EmptySentinel is the value a required field holds until the user fills it.
// A legitimate measurement of exactly 0.0 is treated as not provided; none of
// these measurements is ever 0 for a real sample.
const EmptySentinel = 0.0

var breastCancer *Schema

func init() {
	specs := make([]Spec, len(seedFeatures))
	for i, f := range seedFeatures {
		lo := 0.0
		def := f.def
		specs[i] = Spec{
			Name:     f.name,
			Min:      &lo,
			Default:  &def,
			Required: true,
		}
	}
	s, err := NewSchema(specs)
	if err != nil {
		panic("features: invalid seed table: " + err.Error())
	}
	breastCancer = s
}

// BreastCancer returns the 30-feature schema the bundled classifier expects.
func BreastCancer() *Schema {
	return breastCancer
}
