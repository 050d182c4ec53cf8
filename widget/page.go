package widget

import (
	"embed"
	"html/template"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// DefaultSDKBaseURL is the ES module CDN the page loads the SDK from.
const DefaultSDKBaseURL = "https://esm.sh"

const (
	reactVersion = "18.3.1"
	sdkVersion   = "1.10.6"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// Assets locates the ES modules and stylesheet of the SDK and its React
// runtime.
type Assets struct {
	React          string `json:"react"`
	ReactDOMClient string `json:"reactDomClient"`
	Core           string `json:"core"`
	UI             string `json:"ui"`
	Stylesheet     string `json:"stylesheet"`
}

// AssetsFromBase pins the SDK modules under a CDN base such as
// https://esm.sh. An empty base selects DefaultSDKBaseURL.
func AssetsFromBase(base string) Assets {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = DefaultSDKBaseURL
	}
	deps := "?deps=react@" + reactVersion + ",react-dom@" + reactVersion
	return Assets{
		React:          base + "/react@" + reactVersion,
		ReactDOMClient: base + "/react-dom@" + reactVersion + "/client",
		Core:           base + "/@copilotkit/react-core@" + sdkVersion + deps,
		UI:             base + "/@copilotkit/react-ui@" + sdkVersion + deps,
		Stylesheet:     base + "/@copilotkit/react-ui@" + sdkVersion + "/dist/index.css",
	}
}

// Page is one rendered widget instance.
type Page struct {
	InstanceID string
	Mount      Mount
	Assets     Assets
}

// NewPage prepares m for rendering under a fresh instance ID.
func NewPage(m Mount, assets Assets) Page {
	return Page{
		InstanceID: "support-chat-" + uuid.NewString(),
		Mount:      m,
		Assets:     assets,
	}
}

// Render writes the HTML document that mounts the widget once.
func (p Page) Render(w io.Writer) error {
	if err := pageTemplate.Execute(w, p); err != nil {
		return errors.Wrap(err, "render widget page")
	}
	return nil
}
