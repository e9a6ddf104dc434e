package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Template errors (E100-E199)

	"E101": {
		Category: CategoryTemplate,
		Message:  "Unclosed action",
		Detail:   "A '{{' was opened but the matching '}}' was never found.",
	},
	"E102": {
		Category: CategoryTemplate,
		Message:  "Unterminated block",
		Detail:   "An 'if' or 'each' block is missing its '{{end}}'.",
	},
	"E103": {
		Category: CategoryTemplate,
		Message:  "Unexpected end",
		Detail:   "An '{{end}}' or '{{else}}' appeared outside of any open block.",
	},
	"E104": {
		Category: CategoryTemplate,
		Message:  "Empty action",
		Detail:   "An action must name a value, e.g. '{{title}}'.",
	},
	"E105": {
		Category: CategoryTemplate,
		Message:  "Unknown filter",
		Detail:   "A pipeline named a filter that is not registered on this template.",
	},

	// Render errors (E200-E299)

	"E201": {
		Category: CategoryRender,
		Message:  "No container",
		Detail:   "The application was constructed without a document container to render into.",
	},
	"E202": {
		Category: CategoryRender,
		Message:  "Render failed",
		Detail:   "The route handler returned an error while producing HTML.",
	},

	// Route errors (E300-E399)

	"E301": {
		Category: CategoryRoute,
		Message:  "No route matched",
		Detail:   "No registered pattern matched the navigated path and no not-found handler is set.",
	},
	"E302": {
		Category: CategoryRoute,
		Message:  "Invalid route pattern",
		Detail:   "Route patterns must start with '/' and a '*name' segment must be last.",
	},
	"E303": {
		Category: CategoryRoute,
		Message:  "Invalid path",
		Detail:   "The navigated path is malformed or contains segments that cannot be decoded.",
	},

	// Store errors (E400-E499)

	"E401": {
		Category: CategoryStore,
		Message:  "Persistence load failed",
		Detail:   "The store's persister could not read the previous snapshot.",
	},
	"E402": {
		Category: CategoryStore,
		Message:  "Persistence save failed",
		Detail:   "The store's persister could not write the current snapshot.",
	},

	// Config errors (E500-E599)

	"E501": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No glint.json or glint.yaml was found in the working directory.",
	},
	"E502": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The configuration file could not be parsed.",
	},
	"E503": {
		Category: CategoryConfig,
		Message:  "Config validation failed",
		Detail:   "One or more configuration values are out of range or malformed.",
	},

	// Build and deploy errors (E600-E699)

	"E601": {
		Category: CategoryBuild,
		Message:  "Build failed",
		Detail:   "The production build could not be completed.",
	},
	"E602": {
		Category: CategoryBuild,
		Message:  "Public directory missing",
		Detail:   "The configured public directory does not exist.",
	},
	"E611": {
		Category: CategoryDeploy,
		Message:  "Deploy failed",
		Detail:   "One or more files could not be uploaded.",
	},
	"E612": {
		Category: CategoryDeploy,
		Message:  "No deploy target",
		Detail:   "Deploying requires a bucket, either in the config file or via --bucket.",
	},

	// CLI errors (E700-E799)

	"E701": {
		Category: CategoryCLI,
		Message:  "Invalid project name",
		Detail:   "Project names use lowercase letters, numbers, and hyphens.",
	},
	"E702": {
		Category: CategoryCLI,
		Message:  "Directory already exists",
		Detail:   "The target directory for the new project already exists.",
	},
	"E703": {
		Category: CategoryCLI,
		Message:  "Unknown template",
		Detail:   "The requested project template is not registered.",
	},
}
