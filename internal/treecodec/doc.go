// Package treecodec converts a tree design (drag path plus ornaments) to and
// from its storage and transport formats.
//
// Version 2 is the compact format written today: short keys, vectors as
// triples, numbers rounded to three decimals, long ids shortened and the
// click point dropped. Version 1 is the legacy long-form format, kept
// readable so previously stored designs still load.
//
//	{"v":2,"pts":[[10.123,20.789,0]],"orn":[{"i":"orn1","t":"Ball","p":[1,2,3],"n":[0,1,0],"c":"#f00"}]}
//
// Precision loss in version 2 is part of the format: deserializing never
// recovers more than three decimals, and a rehydrated ornament's click point
// always equals its position.
package treecodec
