// Package domain contains the core model for the covidetl pipeline.
//
// The domain is transport- and persistence-agnostic: it does not depend on
// HTTP, Parquet, AWS, or the filesystem. Infra/adapters map into/from these
// types.
package domain
