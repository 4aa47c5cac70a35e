package styles

import "github.com/chisel-ui/chisel/internal/types"

// Default returns the compiled-in catalog covering the common utility-class
// vocabulary. Callers get a fresh copy each time; the returned catalog is
// safe to mutate or merge over.
func Default() *Catalog {
	return &Catalog{
		Groups: []ClassGroup{
			{
				Name:     "backgroundColor",
				Label:    "Background color",
				Category: "Appearance",
				Type:     types.PropertyTypeColor,
				Prefixes: []string{"bg-"},
				Tokens: []string{
					"bg-white", "bg-black", "bg-transparent",
					"bg-slate-100", "bg-slate-500", "bg-slate-900",
					"bg-gray-100", "bg-gray-500", "bg-gray-900",
					"bg-red-500", "bg-green-500", "bg-blue-500",
					"bg-blue-600", "bg-yellow-400", "bg-indigo-500",
				},
			},
			{
				Name:     "fontSize",
				Label:    "Font size",
				Category: "Typography",
				Unit:     true,
				Tokens: []string{
					"text-xs", "text-sm", "text-base", "text-lg",
					"text-xl", "text-2xl", "text-3xl", "text-4xl",
					"text-5xl", "text-6xl",
				},
			},
			{
				Name:     "textAlign",
				Label:    "Text align",
				Category: "Typography",
				Tokens:   []string{"text-left", "text-center", "text-right", "text-justify"},
			},
			{
				Name:     "textColor",
				Label:    "Text color",
				Category: "Typography",
				Type:     types.PropertyTypeColor,
				Prefixes: []string{"text-"},
				Tokens: []string{
					"text-white", "text-black",
					"text-slate-500", "text-slate-900",
					"text-gray-500", "text-gray-700", "text-gray-900",
					"text-red-500", "text-green-600", "text-blue-600",
				},
			},
			{
				Name:     "fontWeight",
				Label:    "Font weight",
				Category: "Typography",
				Prefixes: []string{"font-"},
				Tokens: []string{
					"font-thin", "font-light", "font-normal",
					"font-medium", "font-semibold", "font-bold",
					"font-extrabold", "font-black",
				},
			},
			{
				Name:     "padding",
				Label:    "Padding",
				Category: "Spacing",
				Unit:     true,
				Prefixes: []string{"p-"},
				Tokens: []string{
					"p-0", "p-1", "p-2", "p-3", "p-4",
					"p-5", "p-6", "p-8", "p-10", "p-12",
				},
			},
			{
				Name:     "margin",
				Label:    "Margin",
				Category: "Spacing",
				Unit:     true,
				Prefixes: []string{"m-"},
				Tokens: []string{
					"m-0", "m-1", "m-2", "m-3", "m-4",
					"m-5", "m-6", "m-8", "m-10", "m-12", "m-auto",
				},
			},
			{
				Name:     "borderRadius",
				Label:    "Border radius",
				Category: "Appearance",
				Unit:     true,
				Prefixes: []string{"rounded-"},
				Tokens: []string{
					"rounded-none", "rounded-sm", "rounded", "rounded-md",
					"rounded-lg", "rounded-xl", "rounded-2xl", "rounded-full",
				},
			},
			{
				Name:     "borderWidth",
				Label:    "Border width",
				Category: "Appearance",
				Unit:     true,
				Tokens:   []string{"border-0", "border", "border-2", "border-4", "border-8"},
			},
			{
				Name:     "borderColor",
				Label:    "Border color",
				Category: "Appearance",
				Type:     types.PropertyTypeColor,
				Prefixes: []string{"border-"},
				Tokens: []string{
					"border-transparent", "border-white", "border-black",
					"border-gray-200", "border-gray-300", "border-slate-300",
					"border-blue-500", "border-red-500",
				},
			},
			{
				Name:     "shadow",
				Label:    "Shadow",
				Category: "Appearance",
				Prefixes: []string{"shadow-"},
				Tokens: []string{
					"shadow-none", "shadow-sm", "shadow", "shadow-md",
					"shadow-lg", "shadow-xl", "shadow-2xl",
				},
			},
			{
				Name:     "display",
				Label:    "Display",
				Category: "Layout",
				Tokens: []string{
					"block", "inline-block", "inline", "flex",
					"inline-flex", "grid", "hidden",
				},
			},
			{
				Name:     "width",
				Label:    "Width",
				Category: "Layout",
				Unit:     true,
				Prefixes: []string{"w-"},
				Tokens:   []string{"w-auto", "w-full", "w-screen", "w-1/2", "w-1/3", "w-2/3", "w-64"},
			},
			{
				Name:     "height",
				Label:    "Height",
				Category: "Layout",
				Unit:     true,
				Prefixes: []string{"h-"},
				Tokens:   []string{"h-auto", "h-full", "h-screen", "h-64"},
			},
		},
		Attributes: []Attribute{
			{Name: "placeholder", Label: "Placeholder", Type: types.PropertyTypeString, Tags: []string{"input", "textarea"}},
			{Name: "value", Label: "Value", Type: types.PropertyTypeString, Tags: []string{"input", "textarea", "select", "option"}},
			{
				Name: "type", Label: "Input type", Type: types.PropertyTypeSelect,
				Options: []string{"text", "email", "password", "number", "search", "tel", "url", "checkbox", "radio", "submit"},
				Tags:    []string{"input", "button"},
			},
			{Name: "disabled", Label: "Disabled", Type: types.PropertyTypeBoolean},
			{Name: "href", Label: "Link URL", Type: types.PropertyTypeString, Tags: []string{"a"}},
			{
				Name: "target", Label: "Link target", Type: types.PropertyTypeSelect,
				Options: []string{"_self", "_blank", "_parent", "_top"},
				Tags:    []string{"a"},
			},
			{Name: "src", Label: "Image source", Type: types.PropertyTypeString, Tags: []string{"img"}},
			{Name: "alt", Label: "Alt text", Type: types.PropertyTypeString, Tags: []string{"img"}},
			{Name: "title", Label: "Tooltip", Type: types.PropertyTypeString},
			{Name: "required", Label: "Required", Type: types.PropertyTypeBoolean, Tags: []string{"input", "textarea", "select"}},
			{Name: "readOnly", Label: "Read only", Type: types.PropertyTypeBoolean, Tags: []string{"input", "textarea"}},
		},
		UnitKeys: []string{
			"padding", "margin", "fontSize", "borderWidth", "borderRadius",
			"width", "height", "gap", "top", "left", "right", "bottom",
		},
	}
}
