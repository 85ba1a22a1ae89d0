// Package api serves the messages indexed by NomadIndexer over HTTP.
// @title NomadIndexer API
// @version 1.0
// @description Query API for Nomad cross-chain messages and indexing status
// @contact.name API Support
// @contact.url https://github.com/goran-ethernal/NomadIndexer
// @license.name Apache 2.0
// @license.url https://www.apache.org/licenses/LICENSE-2.0.html
// @basePath /api/v1
// @schemes http https
package api
