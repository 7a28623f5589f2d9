// Package export writes JSON snapshots of the catalog (movies, artists and
// their links) to the configured S3/MinIO bucket under
// <export_prefix>/catalog-<unix nanos>-<id>.json, and lists or reads them back.
package export
