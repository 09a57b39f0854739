// Package prefab builds Cocos Creator prefab documents.
//
// A prefab document is a flat JSON array. Index 0 is always the cc.Prefab
// asset record and index 1 the root cc.Node; every cross-reference is written
// as {"__id__": n} where n is a position in the array. Components are appended
// while the document is being built. Finalize then appends one
// cc.CompPrefabInfo per component (in add order) and a trailing cc.PrefabInfo,
// and back-patches every __prefab / _prefab reference from the positions
// those records actually landed at.
//
// A Builder moves through three states: Building, Finalized and Serialized.
// Adding a component after Finalize is a structural error: the arena is left
// untouched and the error is reported by Err, Finalize, Bytes and Save.
package prefab
