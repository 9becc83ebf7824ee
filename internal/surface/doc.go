// Package surface samples points uniformly over a triangle mesh and orients
// objects placed on it.
//
// Triangles are chosen with probability proportional to their area through
// a cumulative table and binary search; a point inside the chosen triangle
// comes from folded barycentric coordinates. Normals are interpolated from
// the vertex normals and renormalized.
//
// Lathe builds the revolved tree surface from a silhouette profile, so the
// usual pipeline is silhouette.Build, Profile.LatheOrder, Lathe, NewSampler.
package surface
