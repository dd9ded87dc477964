package extract

import (
	"fmt"
	"path/filepath"
	"strconv"

	"twii-miner/core/graph"
	"twii-miner/core/identity"
	"twii-miner/core/labels"
	"twii-miner/core/xmldoc"

	"go.uber.org/zap"
)

// Label document names under lore/labels/<locale>/.
const (
	labelsSkills   = "skills"
	labelsItems    = "items"
	labelsQuests   = "quests"
	labelsDeeds    = "deeds"
	labelsFactions = "factions"
	labelsNPCs     = "npcs"
)

// State is everything a run shares between stages. A fresh State is built per run.
type State struct {
	Graph    *graph.Graph
	Labels   *labels.Store
	Resolver *identity.Resolver

	reader    xmldoc.Reader
	loreDir   string
	blacklist map[uint32]bool
	logger    *zap.Logger
}

// NewState prepares an empty graph for a run over cfg.
func NewState(cfg Config, reader xmldoc.Reader, logger *zap.Logger) (*State, error) {
	blacklist, err := cfg.BlacklistIDs()
	if err != nil {
		return nil, err
	}
	return &State{
		Graph:     graph.New(),
		Labels:    labels.NewStore(reader, cfg.LabelsDir()),
		Resolver:  identity.NewResolver(),
		reader:    reader,
		loreDir:   cfg.LoreDir(),
		blacklist: blacklist,
		logger:    logger,
	}, nil
}

// Stats counts what a stage did.
type Stats struct {
	Created  int `json:"created"`
	Enriched int `json:"enriched"`
	Skipped  int `json:"skipped"`
}

// document loads a lore document and returns its root element.
func (s *State) document(file, root string) (*xmldoc.Node, error) {
	doc, err := s.reader.Load(filepath.Join(s.loreDir, file))
	if err != nil {
		return nil, err
	}
	return doc.RootElement(root)
}

// skip counts a record dropped for a missing or unreadable attribute.
func (s *State) skip(stats *Stats, element, attr string) {
	stats.Skipped++
	s.logger.Debug("record skipped", zap.String("element", element), zap.String("attribute", attr))
}

func decimalAttr(n *xmldoc.Node, name string) (uint32, bool) {
	v, ok := n.Attr(name)
	if !ok {
		return 0, false
	}
	return identity.ParseDecimal(v)
}

func intAttr(n *xmldoc.Node, name string) (int, bool) {
	v, ok := n.Attr(name)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

func floatAttr(n *xmldoc.Node, name string) (float64, bool) {
	v, ok := n.Attr(name)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func idKey(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}

// knownSkill returns the skill with the id held by attr, if the graph has it.
func (s *State) knownSkill(n *xmldoc.Node, attr string) (*graph.Skill, bool) {
	id, ok := decimalAttr(n, attr)
	if !ok {
		return nil, false
	}
	return s.Graph.Skill(id)
}

func ensureLabel(l *labels.Label) labels.Label {
	if *l == nil {
		*l = labels.Label{}
	}
	return *l
}

func stageErr(stage string, err error) error {
	return fmt.Errorf("stage %s: %w", stage, err)
}
