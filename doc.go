/*

Package sigvault defines the interfaces and kernel types shared by the whole
module: storage, addresses and conditions. Look into this package to get a
brief overview of design decisions made around interfaces and the building
blocks the extensions under x/ are made of.

*/

package sigvault
