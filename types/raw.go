// Package types holds the persisted JSON shapes of a project file.
//
// The structs mirror the file format field for field. They carry raw ids
// (strings and ints exactly as stored) and no cross references; the model
// package resolves references when it builds the in-memory graph.
package types

// RawProject is the top-level project file.
type RawProject struct {
	Name               string         `json:"name"`
	GlobalDeclarations string         `json:"globalDeclarations"`
	SystemDeclarations string         `json:"systemDeclarations"`
	Components         []RawComponent `json:"components"`
	Systems            []RawSystem    `json:"systems"`
}

// RawComponent is one automaton.
type RawComponent struct {
	Name                   string        `json:"name"`
	Declarations           string        `json:"declarations"`
	Locations              []RawLocation `json:"locations"`
	Edges                  []RawEdge     `json:"edges"`
	Description            string        `json:"description"`
	X                      float64       `json:"x"`
	Y                      float64       `json:"y"`
	Width                  float64       `json:"width"`
	Height                 float64       `json:"height"`
	Color                  string        `json:"color"`
	IncludeInPeriodicCheck bool          `json:"includeInPeriodicCheck"`
}

// RawLocation is a state of a component.
type RawLocation struct {
	ID         string  `json:"id"`
	Nickname   string  `json:"nickname"`
	Invariant  string  `json:"invariant"`
	Type       string  `json:"type"`
	Urgency    string  `json:"urgency"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Color      string  `json:"color"`
	NicknameX  float64 `json:"nicknameX"`
	NicknameY  float64 `json:"nicknameY"`
	InvariantX float64 `json:"invariantX"`
	InvariantY float64 `json:"invariantY"`
}

// RawEdge is a transition between two locations of the same component.
// SourceLocation and TargetLocation hold location raw ids.
type RawEdge struct {
	ID             string    `json:"id"`
	Group          string    `json:"group"`
	SourceLocation string    `json:"sourceLocation"`
	TargetLocation string    `json:"targetLocation"`
	Status         string    `json:"status"`
	Select         string    `json:"select"`
	Guard          string    `json:"guard"`
	Update         string    `json:"update"`
	Sync           string    `json:"sync"`
	IsLocked       bool      `json:"isLocked"`
	Nails          []RawNail `json:"nails"`
}

// RawNail is a bend point on an edge, optionally anchoring a property label.
type RawNail struct {
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	PropertyType string  `json:"propertyType"`
	PropertyX    float64 `json:"propertyX"`
	PropertyY    float64 `json:"propertyY"`
}

// RawSystem is a composition of component instances and operators.
type RawSystem struct {
	Name               string                 `json:"name"`
	Description        string                 `json:"description"`
	X                  float64                `json:"x"`
	Y                  float64                `json:"y"`
	Width              float64                `json:"width"`
	Height             float64                `json:"height"`
	Color              string                 `json:"color"`
	SystemRootX        float64                `json:"systemRootX"`
	ComponentInstances []RawComponentInstance `json:"componentInstances"`
	Operators          []RawOperator          `json:"operators"`
	Edges              []RawSystemEdge        `json:"edges"`
}

// RawComponentInstance places a component inside a system.
type RawComponentInstance struct {
	ID            int     `json:"id"`
	ComponentName string  `json:"componentName"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
}

// RawOperator combines the members below it in the system tree.
type RawOperator struct {
	ID   int     `json:"id"`
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// RawSystemEdge links a system member to its parent. Parent 0 is the system
// root.
type RawSystemEdge struct {
	Parent int `json:"parent"`
	Child  int `json:"child"`
}
