package main

// General API documentation for swaggo.
//
// @title           modelpack API
// @version         1.0
// @description     Serve, capture and restore native embedding models over HTTP.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
