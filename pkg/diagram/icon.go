package diagram

import (
	"slices"

	"github.com/matzehuels/archflow/pkg/errors"
)

// Icon identifies a node icon. The set is closed: every value has an entry
// in the icon table, which is sized by iconCount so a missing entry fails
// to compile.
type Icon int

const (
	IconNone Icon = iota
	IconUser
	IconUpload
	IconSearch
	IconBookOpen
	IconUserPlus
	IconLogIn
	IconServer
	IconImage
	IconSparkles
	IconDatabase
	IconShield
	IconTag
	IconBox
	IconPalette
	IconMapPin
	IconType
	IconBookmark
	IconCpu

	iconCount
)

type iconInfo struct {
	name  string // display name, also the accepted external key
	key   string // browser icon-library key
	glyph string // terminal and DOT label glyph
}

var icons = [iconCount]iconInfo{
	IconNone:     {"", "", ""},
	IconUser:     {"User", "user", "☺"},
	IconUpload:   {"Upload", "upload", "⇪"},
	IconSearch:   {"Search", "search", "⌕"},
	IconBookOpen: {"BookOpen", "book-open", "❏"},
	IconUserPlus: {"UserPlus", "user-plus", "✚"},
	IconLogIn:    {"LogIn", "log-in", "➜"},
	IconServer:   {"Server", "server", "▤"},
	IconImage:    {"Image", "image", "▣"},
	IconSparkles: {"Sparkles", "sparkles", "✦"},
	IconDatabase: {"Database", "database", "⛁"},
	IconShield:   {"Shield", "shield", "⛨"},
	IconTag:      {"Tag", "tag", "⌗"},
	IconBox:      {"Box", "box", "□"},
	IconPalette:  {"Palette", "palette", "◐"},
	IconMapPin:   {"MapPin", "map-pin", "⌖"},
	IconType:     {"Type", "type", "T"},
	IconBookmark: {"Bookmark", "bookmark", "⚑"},
	IconCpu:      {"Cpu", "cpu", "⚙"},
}

// String returns the icon's display name ("" for IconNone).
func (i Icon) String() string {
	if !i.valid() {
		return ""
	}
	return icons[i].name
}

// Key returns the icon-library key the browser client renders.
func (i Icon) Key() string {
	if !i.valid() {
		return ""
	}
	return icons[i].key
}

// Glyph returns a single-character stand-in for text renderers.
func (i Icon) Glyph() string {
	if !i.valid() {
		return ""
	}
	return icons[i].glyph
}

func (i Icon) valid() bool { return i >= 0 && i < iconCount }

// MarshalText encodes the icon by display name.
func (i Icon) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText decodes an icon name. Unknown names decode to IconNone so
// that a stale key degrades to the kind's default icon.
func (i *Icon) UnmarshalText(b []byte) error {
	*i = ParseIcon(string(b))
	return nil
}

// ParseIcon converts an external icon key, either the display name
// ("BookOpen") or the library key ("book-open"). Unknown keys yield
// IconNone.
func ParseIcon(s string) Icon {
	if s == "" {
		return IconNone
	}
	for i := IconNone + 1; i < iconCount; i++ {
		if icons[i].name == s || icons[i].key == s {
			return i
		}
	}
	return IconNone
}

// kindIcons lists the icons a node of each kind may choose from; the first
// entry is the kind's default. Service nodes are resolved by service.
var kindIcons = map[Kind][]Icon{
	KindUser:    {IconUser},
	KindAction:  {IconSearch, IconUpload, IconBookOpen, IconUserPlus, IconLogIn},
	KindFeature: {IconTag, IconUser, IconBox, IconPalette, IconMapPin, IconType, IconBookmark},
	KindData:    {IconDatabase},
	KindProcess: {IconCpu},
}

// DefaultIcon returns the icon drawn for a node of kind k when it names no
// usable icon.
func DefaultIcon(k Kind) Icon {
	if k == KindService {
		return IconServer
	}
	if allowed := kindIcons[k]; len(allowed) > 0 {
		return allowed[0]
	}
	return IconNone
}

// ResolveIcon returns the icon to draw for n. Service nodes are keyed by
// service; other kinds use n.Icon when their table allows it and fall back
// to [DefaultIcon] otherwise.
func ResolveIcon(n Node) Icon {
	if n.Kind == KindService {
		return serviceStyle(n.Service).icon
	}
	if n.Icon != IconNone && slices.Contains(kindIcons[n.Kind], n.Icon) {
		return n.Icon
	}
	return DefaultIcon(n.Kind)
}

// Palette holds the colours a node is drawn with, as hex strings.
type Palette struct {
	Border     string
	Accent     string
	Background string
}

var (
	paletteBlue   = Palette{Border: "#3b82f6", Accent: "#3b82f6", Background: "#dbeafe"}
	palettePurple = Palette{Border: "#a855f7", Accent: "#a855f7", Background: "#f3e8ff"}
	paletteGreen  = Palette{Border: "#22c55e", Accent: "#22c55e", Background: "#dcfce7"}
	paletteTeal   = Palette{Border: "#14b8a6", Accent: "#14b8a6", Background: "#ccfbf1"}
	paletteIndigo = Palette{Border: "#6366f1", Accent: "#6366f1", Background: "#e0e7ff"}
	paletteAmber  = Palette{Border: "#f59e0b", Accent: "#f59e0b", Background: "#fef3c7"}
	paletteOrange = Palette{Border: "#f97316", Accent: "#f97316", Background: "#ffedd5"}
	paletteRose   = Palette{Border: "#f43f5e", Accent: "#f43f5e", Background: "#ffe4e6"}
)

type svcStyle struct {
	icon    Icon
	palette Palette
}

func serviceStyle(s Service) svcStyle {
	switch s {
	case ServiceVision:
		return svcStyle{IconImage, paletteTeal}
	case ServiceGemini:
		return svcStyle{IconSparkles, paletteIndigo}
	case ServiceDatabase:
		return svcStyle{IconDatabase, paletteAmber}
	case ServiceAuth:
		return svcStyle{IconShield, paletteOrange}
	default:
		return svcStyle{IconServer, paletteGreen}
	}
}

// PaletteFor returns the colours for n.
func PaletteFor(n Node) Palette {
	switch n.Kind {
	case KindUser:
		return paletteBlue
	case KindAction:
		return palettePurple
	case KindService:
		return serviceStyle(n.Service).palette
	case KindFeature:
		return paletteTeal
	case KindData:
		return paletteAmber
	case KindProcess:
		return paletteRose
	}
	return paletteGreen
}

// ParseKind converts a kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if slices.Contains(Kinds, k) {
		return k, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown node kind %q", s)
}
