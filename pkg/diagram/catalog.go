package diagram

// Edge colours.
const (
	strokeUser    = "#6366f1"
	strokeFlow    = "#10b981"
	strokeStorage = "#f59e0b"
)

// handleBottom is the bottom source handle of a service node.
const handleBottom = "b"

// nodeSpec declares a node once for both modes. A nil simple placement
// hides the node in simple mode.
type nodeSpec struct {
	id          string
	kind        Kind
	label       string
	icon        Icon
	service     Service
	description string
	simple      *Position
	detailed    Position
}

type edgeSpec struct {
	id       string
	source   string
	target   string
	handle   string
	label    string
	animated bool
	stroke   string
	marker   Marker
	routing  Routing
}

func at(x, y float64) *Position { return &Position{X: x, Y: y} }

func pos(x, y float64) Position { return Position{X: x, Y: y} }

var nodeCatalog = []nodeSpec{
	{id: "user", kind: KindUser, label: "User",
		simple: at(50, 300), detailed: pos(50, 400)},

	// Web app actions
	{id: "submit", kind: KindAction, label: "Submit Image", icon: IconUpload,
		description: "User uploads artwork for analysis",
		simple:      at(350, 100), detailed: pos(300, 200)},
	{id: "analyze", kind: KindAction, label: "Analyzes Image", icon: IconSearch,
		description: "Process image with AI services",
		simple:      at(350, 250), detailed: pos(300, 400)},
	{id: "story", kind: KindAction, label: "Create Story", icon: IconBookOpen,
		description: "Generate creative narrative based on image analysis",
		simple:      at(350, 400), detailed: pos(300, 600)},
	{id: "account", kind: KindAction, label: "Account Creation", icon: IconUserPlus,
		description: "New user registration",
		simple:      at(350, 550), detailed: pos(300, 800)},
	{id: "login", kind: KindAction, label: "Login", icon: IconLogIn,
		description: "User authentication",
		simple:      at(350, 700), detailed: pos(300, 950)},

	// External services
	{id: "vision", kind: KindService, label: "Google Vision", service: ServiceVision,
		description: "Extracts detailed information from uploaded images",
		simple:      at(650, 100), detailed: pos(600, 200)},
	{id: "gemini", kind: KindService, label: "Google Gemini", service: ServiceGemini,
		description: "Generates creative stories based on image analysis data",
		simple:      at(650, 325), detailed: pos(600, 500)},
	{id: "database", kind: KindService, label: "Database", service: ServiceDatabase,
		description: "Stores user accounts and artwork data",
		simple:      at(650, 550), detailed: pos(600, 800)},
	{id: "auth", kind: KindService, label: "Authentication", service: ServiceAuth,
		description: "Handles user authentication",
		simple:      at(650, 700), detailed: pos(600, 950)},

	// Detailed view only. Aggregation and process nodes come first so they
	// sit behind the feature nodes.
	{id: "extracted-data", kind: KindData, label: "Extracted Image Data",
		description: "Structured data from Vision API", detailed: pos(1200, 350)},
	{id: "story-generation", kind: KindProcess, label: "Story Generation",
		description: "AI-powered narrative creation", detailed: pos(1000, 550)},

	{id: "label-detection", kind: KindFeature, label: "Label Detection", icon: IconTag, detailed: pos(1000, 50)},
	{id: "face-detection", kind: KindFeature, label: "Face Detection", icon: IconUser, detailed: pos(1000, 130)},
	{id: "object-detection", kind: KindFeature, label: "Object Detection", icon: IconBox, detailed: pos(1000, 210)},
	{id: "image-properties", kind: KindFeature, label: "Image Properties", icon: IconPalette, detailed: pos(1000, 290)},
	{id: "landmark-detection", kind: KindFeature, label: "Landmark Detection", icon: IconMapPin, detailed: pos(1400, 50)},
	{id: "text-detection", kind: KindFeature, label: "Text Detection", icon: IconType, detailed: pos(1400, 130)},
	{id: "logo-detection", kind: KindFeature, label: "Logo Detection", icon: IconBookmark, detailed: pos(1400, 210)},
}

// Labels on edges are detailed-mode text and are dropped in simple mode.
var edgeCatalog = []edgeSpec{
	// User to web app
	{id: "user-submit", source: "user", target: "submit", animated: true, stroke: strokeUser},
	{id: "user-analyze", source: "user", target: "analyze", animated: true, stroke: strokeUser},
	{id: "user-story", source: "user", target: "story", animated: true, stroke: strokeUser},
	{id: "user-account", source: "user", target: "account", animated: true, stroke: strokeUser},
	{id: "user-login", source: "user", target: "login", animated: true, stroke: strokeUser},

	// Web app to services
	{id: "submit-vision", source: "submit", target: "vision", label: "Upload Image",
		animated: true, stroke: strokeFlow, marker: MarkerArrowClosed},
	{id: "vision-analyze", source: "vision", target: "analyze", label: "Image Analysis Results",
		animated: true, stroke: strokeFlow, marker: MarkerArrowClosed},
	{id: "analyze-gemini", source: "analyze", target: "gemini", label: "Send Analysis Data",
		animated: true, stroke: strokeFlow, marker: MarkerArrowClosed},
	{id: "gemini-story", source: "gemini", target: "story", label: "Generated Narrative",
		animated: true, stroke: strokeFlow, marker: MarkerArrowClosed},
	{id: "account-database", source: "account", target: "database",
		animated: true, stroke: strokeStorage, marker: MarkerArrowClosed},
	{id: "login-auth", source: "login", target: "auth",
		animated: true, stroke: strokeStorage, marker: MarkerArrowClosed},

	// Vision to features, leaving from the bottom handle
	{id: "vision-label", source: "vision", target: "label-detection", handle: handleBottom, stroke: strokeFlow, routing: RoutingSmoothStep},
	{id: "vision-face", source: "vision", target: "face-detection", handle: handleBottom, stroke: strokeFlow, routing: RoutingSmoothStep},
	{id: "vision-object", source: "vision", target: "object-detection", handle: handleBottom, stroke: strokeFlow, routing: RoutingSmoothStep},
	{id: "vision-properties", source: "vision", target: "image-properties", handle: handleBottom, stroke: strokeFlow, routing: RoutingSmoothStep},
	{id: "vision-landmark", source: "vision", target: "landmark-detection", handle: handleBottom, stroke: strokeFlow, routing: RoutingSmoothStep},
	{id: "vision-text", source: "vision", target: "text-detection", handle: handleBottom, stroke: strokeFlow, routing: RoutingSmoothStep},
	{id: "vision-logo", source: "vision", target: "logo-detection", handle: handleBottom, stroke: strokeFlow, routing: RoutingSmoothStep},

	// Features to the aggregate
	{id: "label-data", source: "label-detection", target: "extracted-data", stroke: strokeFlow, routing: RoutingSmoothStep},
	{id: "face-data", source: "face-detection", target: "extracted-data", stroke: strokeFlow, routing: RoutingSmoothStep},
	{id: "object-data", source: "object-detection", target: "extracted-data", stroke: strokeFlow, routing: RoutingSmoothStep},
	{id: "properties-data", source: "image-properties", target: "extracted-data", stroke: strokeFlow, routing: RoutingSmoothStep},
	{id: "landmark-data", source: "landmark-detection", target: "extracted-data", stroke: strokeFlow, routing: RoutingSmoothStep},
	{id: "text-data", source: "text-detection", target: "extracted-data", stroke: strokeFlow, routing: RoutingSmoothStep},
	{id: "logo-data", source: "logo-detection", target: "extracted-data", stroke: strokeFlow, routing: RoutingSmoothStep},

	// Aggregate through story generation back to the story action
	{id: "data-gemini", source: "extracted-data", target: "gemini", label: "Send Structured Data",
		animated: true, stroke: strokeFlow, marker: MarkerArrowClosed, routing: RoutingSmoothStep},
	{id: "gemini-process", source: "gemini", target: "story-generation",
		stroke: strokeFlow, marker: MarkerArrowClosed, routing: RoutingSmoothStep},
	{id: "process-story", source: "story-generation", target: "story", label: "Generated Story",
		animated: true, stroke: strokeFlow, marker: MarkerArrowClosed, routing: RoutingSmoothStep},
}
