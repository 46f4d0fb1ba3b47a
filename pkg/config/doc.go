// Package config loads the mocksauce project file.
//
// A project file is YAML (.yaml, .yml) or JSON and describes the HTTP
// listener, logging, the default serializer settings and the routes that
// serve fixture documents:
//
//	server:
//	  address: ":4280"
//	logging:
//	  level: debug
//	serializer:
//	  searchByFields: [title]
//	  ignoreFilters: [include]
//	routes:
//	  - path: /api/posts
//	    fixture: fixtures/posts.json
//	  - path: /api/comments
//	    files: fixtures/comments/**/*.yaml
//	    hook: attributes.approved == true
//	    serializer:
//	      searchByFields: [body]
//
// ${VAR} and ${VAR:-default} references are expanded before parsing.
// Relative fixture paths resolve against the directory holding the project
// file.
package config
