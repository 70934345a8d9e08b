// Package domain contains the core catalog entities (categories, movies and
// users), their validation rules and the value objects shared by the other
// layers. It has no dependency on storage or transport.
package domain
