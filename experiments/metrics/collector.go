package metrics

import (
	"sync/atomic"
	"time"
)

// SolveMetric describes a single solver run: how long each phase took and
// the shape of the decomposition tree it worked through.
type SolveMetric struct {
	Goroutines       int
	Ablation         string
	BuildDuration    time.Duration
	SolveDuration    time.Duration
	VariableNodes    int
	ConjunctiveNodes int
	DisjunctiveNodes int
	HybridNodes      int
	LeafNodes        int
	LeafImplicants   int
	UnionTerms       int
}

type Collector interface {
	Start(goroutines int, ablation string)
	TreeBuilt()
	AddVariableNode()
	AddConjunctiveNode()
	AddDisjunctiveNode()
	AddHybridNode()
	AddLeafNode(implicants int)
	AddUnionTerms(terms int)
	Complete() SolveMetric
}

type collector struct {
	goroutines       int
	ablation         string
	startTime        time.Time
	builtTime        time.Time
	variableNodes    atomic.Int32
	conjunctiveNodes atomic.Int32
	disjunctiveNodes atomic.Int32
	hybridNodes      atomic.Int32
	leafNodes        atomic.Int32
	leafImplicants   atomic.Int32
	unionTerms       atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int, ablation string) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.ablation = ablation
}

func (m *collector) TreeBuilt() {
	m.builtTime = time.Now()
}

func (m *collector) AddVariableNode() {
	m.variableNodes.Add(1)
}

func (m *collector) AddConjunctiveNode() {
	m.conjunctiveNodes.Add(1)
}

func (m *collector) AddDisjunctiveNode() {
	m.disjunctiveNodes.Add(1)
}

func (m *collector) AddHybridNode() {
	m.hybridNodes.Add(1)
}

func (m *collector) AddLeafNode(implicants int) {
	m.leafNodes.Add(1)
	m.leafImplicants.Add(int32(implicants))
}

func (m *collector) AddUnionTerms(terms int) {
	m.unionTerms.Add(int64(terms))
}

func (m *collector) Complete() SolveMetric {
	return SolveMetric{
		Goroutines:       m.goroutines,
		Ablation:         m.ablation,
		BuildDuration:    m.builtTime.Sub(m.startTime),
		SolveDuration:    time.Since(m.builtTime),
		VariableNodes:    int(m.variableNodes.Load()),
		ConjunctiveNodes: int(m.conjunctiveNodes.Load()),
		DisjunctiveNodes: int(m.disjunctiveNodes.Load()),
		HybridNodes:      int(m.hybridNodes.Load()),
		LeafNodes:        int(m.leafNodes.Load()),
		LeafImplicants:   int(m.leafImplicants.Load()),
		UnionTerms:       int(m.unionTerms.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int, ablation string) {}
func (m *dummyCollector) TreeBuilt()                            {}
func (m *dummyCollector) AddVariableNode()                      {}
func (m *dummyCollector) AddConjunctiveNode()                   {}
func (m *dummyCollector) AddDisjunctiveNode()                   {}
func (m *dummyCollector) AddHybridNode()                        {}
func (m *dummyCollector) AddLeafNode(implicants int)            {}
func (m *dummyCollector) AddUnionTerms(terms int)               {}
func (m *dummyCollector) Complete() SolveMetric                 { return SolveMetric{} }
