package main

type Mode int

const (
	ModeVertex Mode = iota
	ModeEdge
)

// Listener ids on the pointer channels.
const (
	listenClickVertex = "clickVertex"
	listenDragVertex  = "dragVertex"
	listenStick       = "stickVertexToCursor"
	listenRelease     = "releaseVertexFromCursor"
	listenHover       = "hover"
	listenCreateEdge  = "createEdge"
	listenTrackEdge   = "trackEdge"
)

// Listener id of the scene on the engine's channels.
const sceneListener = "scene"

const (
	exportPNGName  = "graph.png"
	exportTXTName  = "graph.txt"
	defaultWeight  = 1.0
	statusLines    = 1
	fastMoveFactor = 2
)
