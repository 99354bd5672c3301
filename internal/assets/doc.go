// Package assets provides the stylesheets and HTML fragments injected into
// converted pages and the Jekyll layout written next to them.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (defaults)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the page transformer and site writer.
// It tries the custom FilesystemLoader first and falls back to the embedded
// assets when a file is missing, so a custom directory may override only
// index.css and keep everything else.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   ├── fonts.css        # font stacks
//	│   └── index.css        # classes assigned by the page pipeline
//	└── templates/
//	    ├── head.html        # appended to <head> after the stylesheet
//	    ├── tail.html        # appended to the end of <body>
//	    └── layout.html      # Jekyll layout wrapping {{ content }}
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
