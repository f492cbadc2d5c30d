package model

// BaselineCrops is the crop catalog baked into the baseline artifacts. The
// order fixes the classifier's class indices.
var BaselineCrops = []string{
	"rice", "wheat", "maize", "banana", "barley", "blackgram",
	"brinjal", "sesame", "chickpea", "onion", "chilli", "cauliflower",
	"pigeonpeas", "potato", "sorghum", "sugarcane",
}

// Feature indices of the soil/weather vector fed to the crop and yield
// models.
const (
	FeatN = iota
	FeatP
	FeatK
	FeatTemperature
	FeatHumidity
	FeatPH
	FeatRainfall
	SoilFeatureDim
)

// Cost feature indices fed to the expense model.
const (
	CostFertilizer = iota
	CostPesticide
	CostSeed
	CostOther
	CostFeatureDim
)

// NewBaselineArtifacts returns deterministic built-in artifacts used when
// no trained model directory is configured (development mode and tests).
// The trees encode coarse agronomic rules of thumb, not a trained model.
func NewBaselineArtifacts() *Artifacts {
	return &Artifacts{
		Crop:    baselineCropForest(),
		Yield:   baselineYieldForest(),
		Expense: baselineExpenseForest(),
		Encoder: &LabelEncoder{Classes: append([]string(nil), BaselineCrops...)},
	}
}

type treeBuilder struct {
	nodes []Node
}

func (b *treeBuilder) leaf(value float64) int {
	b.nodes = append(b.nodes, Node{Leaf: true, Value: value})
	return len(b.nodes) - 1
}

func (b *treeBuilder) split(feature int, threshold float64, left, right int) int {
	b.nodes = append(b.nodes, Node{Feature: feature, Threshold: threshold, Left: left, Right: right})
	return len(b.nodes) - 1
}

func (b *treeBuilder) tree(root int) Tree {
	// The Predict walk starts at index 0, so move the root there.
	if root != 0 {
		b.nodes[0], b.nodes[root] = b.nodes[root], b.nodes[0]
		for i := range b.nodes {
			if b.nodes[i].Left == 0 {
				b.nodes[i].Left = root
			} else if b.nodes[i].Left == root {
				b.nodes[i].Left = 0
			}
			if b.nodes[i].Right == 0 {
				b.nodes[i].Right = root
			} else if b.nodes[i].Right == root {
				b.nodes[i].Right = 0
			}
		}
	}
	return Tree{Nodes: b.nodes}
}

func class(name string) float64 {
	for i, c := range BaselineCrops {
		if c == name {
			return float64(i)
		}
	}
	return 0
}

func baselineCropForest() *Forest {
	// Tree 1: rainfall-driven. Heavy rain favors rice/sugarcane, dry
	// favors sorghum.
	t1 := &treeBuilder{}
	sorghum := t1.leaf(class("sorghum"))
	chickpea := t1.leaf(class("chickpea"))
	maize := t1.leaf(class("maize"))
	rice := t1.leaf(class("rice"))
	dry := t1.split(FeatPH, 7.0, maize, chickpea)
	low := t1.split(FeatRainfall, 40, sorghum, dry)
	root1 := t1.split(FeatRainfall, 180, low, rice)

	// Tree 2: temperature-driven. Cool climates favor wheat/potato.
	t2 := &treeBuilder{}
	potato := t2.leaf(class("potato"))
	wheat := t2.leaf(class("wheat"))
	banana := t2.leaf(class("banana"))
	sesame := t2.leaf(class("sesame"))
	cool := t2.split(FeatHumidity, 70, wheat, potato)
	warm := t2.split(FeatHumidity, 75, sesame, banana)
	root2 := t2.split(FeatTemperature, 20, cool, warm)

	// Tree 3: nutrient-driven. Nitrogen-hungry crops on rich soil.
	t3 := &treeBuilder{}
	blackgram := t3.leaf(class("blackgram"))
	onion := t3.leaf(class("onion"))
	sugarcane := t3.leaf(class("sugarcane"))
	rice3 := t3.leaf(class("rice"))
	poor := t3.split(FeatP, 30, blackgram, onion)
	rich := t3.split(FeatK, 45, rice3, sugarcane)
	root3 := t3.split(FeatN, 80, poor, rich)

	return &Forest{
		Trees:       []Tree{t1.tree(root1), t2.tree(root2), t3.tree(root3)},
		FeatureDim:  SoilFeatureDim,
		FeatureName: []string{"N", "P", "K", "temperature", "humidity", "ph", "rainfall"},
	}
}

func baselineYieldForest() *Forest {
	t1 := &treeBuilder{}
	arid := t1.leaf(800)
	moderate := t1.leaf(1800)
	wet := t1.leaf(2600)
	monsoon := t1.leaf(3200)
	hi := t1.split(FeatRainfall, 250, wet, monsoon)
	lo := t1.split(FeatRainfall, 150, moderate, hi)
	root1 := t1.split(FeatRainfall, 50, arid, lo)

	t2 := &treeBuilder{}
	lean := t2.leaf(1200)
	fed := t2.leaf(2200)
	rich := t2.leaf(3000)
	mid := t2.split(FeatN, 80, fed, rich)
	root2 := t2.split(FeatN, 40, lean, mid)

	t3 := &treeBuilder{}
	cold := t3.leaf(2400)
	temperate := t3.leaf(2600)
	hot := t3.leaf(1400)
	warm := t3.split(FeatTemperature, 35, temperate, hot)
	root3 := t3.split(FeatTemperature, 20, cold, warm)

	return &Forest{
		Trees:       []Tree{t1.tree(root1), t2.tree(root2), t3.tree(root3)},
		FeatureDim:  SoilFeatureDim,
		FeatureName: []string{"N", "P", "K", "temperature", "humidity", "ph", "rainfall"},
	}
}

func baselineExpenseForest() *Forest {
	t1 := &treeBuilder{}
	lightFert := t1.leaf(8000)
	midFert := t1.leaf(15000)
	heavyFert := t1.leaf(24000)
	fertHi := t1.split(CostFertilizer, 120, midFert, heavyFert)
	root1 := t1.split(CostFertilizer, 50, lightFert, fertHi)

	t2 := &treeBuilder{}
	cheapSeed := t2.leaf(9000)
	midSeed := t2.leaf(16000)
	dearSeed := t2.leaf(22000)
	seedHi := t2.split(CostSeed, 6000, midSeed, dearSeed)
	root2 := t2.split(CostSeed, 2000, cheapSeed, seedHi)

	t3 := &treeBuilder{}
	lightPest := t3.leaf(10000)
	midPest := t3.leaf(15000)
	heavyPest := t3.leaf(21000)
	pestHi := t3.split(CostPesticide, 15, midPest, heavyPest)
	root3 := t3.split(CostPesticide, 5, lightPest, pestHi)

	return &Forest{
		Trees:       []Tree{t1.tree(root1), t2.tree(root2), t3.tree(root3)},
		FeatureDim:  CostFeatureDim,
		FeatureName: []string{"fertilizer", "pesticide", "seed", "other"},
	}
}
